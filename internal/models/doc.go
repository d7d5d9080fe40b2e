// Package models defines the core domain records for groupspend.
//
// # Identity
//
// Users are the only principals. A user appears inside a group as a Member,
// whose ID is the user ID, whose DisplayName is the username and whose Contact
// is the email address.
//
// # Persisted expenses
//
// A GroupExpense is stored keyed by display name: PaidBy, PaidFor and the keys
// of SplitDetails.Shares are usernames, not user IDs. The calculator package
// bridges this representation to the ID-keyed draft the services work with.
//
// # Personal spending
//
// A PersonalExpense belongs to one user and never enters a split. Each user
// also has a monthly budget that personal spending is measured against.
//
// # Design Principles
//
//  1. Records are plain structs with no behaviour beyond small helpers.
//  2. Relationships are expressed with ID strings, never pointers.
//  3. Timestamps are Unix seconds except for the calendar date of an expense.
package models
