// Package billing holds the read-only invoice model consumed by the admin
// backend. Invoices are issued elsewhere in the billing pipeline; this
// service lists them, serves individual documents and aggregates the ops
// dashboard numbers (monthly billed, monthly received, overdue total).
package billing
