// Package txlog hosts the transaction log backend, which records every facade
// transaction by id so a user's history can be listed.
package txlog
