// Package adminaudit provides the authentication, authorization, and
// admin-access audit core for administrative HTTP backends: JWT issuance
// and verification, role-gated authorization checks, and retention of the
// audit trail written for privileged requests.
//
// Audit recording:
//   - middleware/auditware observes every inbound request and persists one
//     AuditRecord per privileged request to a sensitive path. The record is
//     written after the response so it carries the actual status code.
//     Writes are best effort; failures are logged and never surface to the
//     caller, and the audit decision is independent of the authorization
//     decision handlers make through Guard.
//
// Retention:
//   - Every AuditRecord expires exactly 90 days after it was written.
//     Retention deletes expired records on a daily schedule owned by the
//     process lifecycle, or through an explicit root-only purge. Purges are
//     idempotent and scoped to a single snapshot of "now".
package adminaudit
