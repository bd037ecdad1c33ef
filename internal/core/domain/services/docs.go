// Package services provides domain services for the order board. It implements
// business rules that span aggregates and external policy decisions rather than
// belonging to a single aggregate root.
//
// The package includes:
//   - MaxActiveOrdersPolicy: the default creation-quota policy, capping how many
//     pending orders a participant may hold at once
package services
