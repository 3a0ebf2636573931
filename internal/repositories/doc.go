// Package repositories implements SQLite persistence for the recruiting CRM.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// Companies, vacancies and candidates support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [CompanyRepository] : Employers with derived vacancy counts
//   - [VacancyRepository] : Vacancy records and their pipeline stage
//   - [CandidateRepository] : Candidate records, skills, languages and pipeline stage
//   - [StageRepository] : Ordered stage names per item kind
//   - [AuditRepository] : Append-only audit trail with entity, action and time filters
//   - [NotificationRepository] : Per-user notifications with read tracking
//
// Sequence numbers provide stable, human-readable ordering independent of IDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
