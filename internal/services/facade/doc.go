// Package facade hosts the public HTTP facade. Each transaction is written to
// the ledger and the transaction log concurrently; only the ledger reply shapes
// the client response.
package facade
