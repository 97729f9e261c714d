// Package conciliation runs stock reconciliations over uploaded or stored exports.
//
// A run takes one inventory export and any number of store session exports,
// resolves the store to warehouse mapping (request override, then database,
// then configuration) and returns the ordered reconciliation lines with a
// summary. Exports can be uploaded as multipart files or read from the bucket,
// and the result can be downloaded or uploaded as a spreadsheet.
//
// # Routes
//
//   - POST /conciliation: multipart upload (inventory, sessions, mapping, stores).
//   - POST /conciliation/storage: reconcile the exports already in the bucket.
package conciliation
