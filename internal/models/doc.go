// Package models defines the CRM records behind the recruiting pipeline boards.
//
// The package contains two categories of types:
//
// 1. Pipeline records: entities that move through stages on a board
//   - [Vacancy] : An open position at a [Company], with salary and required skills
//   - [Candidate] : A person being hired, with skills, languages and an optional vacancy link
//
// 2. Supporting records
//   - [Company] : Employer owning vacancies
//   - [AuditEntry] : One line of the audit trail (created, updated, deleted, moved)
//   - [Notification] : A user-facing message persisted for later review
//
// Persistent records implement the [Model] interface providing identity and validation.
// The [Repository] interface defines standard CRUD operations for database access.
package models
