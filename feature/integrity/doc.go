// Package integrity provides health checks for the reconciler's infrastructure.
//
// # Checks Provided
//
//   - Structure: the export and report folders exist in the bucket.
//   - Exports: the inventory export and at least one session export are present
//     and carry the required columns.
//   - Server: the store_warehouses table matches the expected model (columns, types).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/exports : Runs exports check.
//   - GET /integrity/server : Runs schema check.
package integrity
