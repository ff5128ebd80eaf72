// Package ledger hosts the balance ledger backend: a running balance per user
// that every facade transaction is folded into.
package ledger
