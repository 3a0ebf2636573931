// Package services implements the pipeline API consumed by the board, the CLI and bulk tasks.
//
// # Pipeline Service
//
// [PipelineService] implements [kanban.Store] over the SQLite repositories. Every call waits on a
// shared rate limiter and then sleeps for a configurable latency, simulating a remote API. Both
// waits honour context cancellation.
//
// # Stage Updates
//
// [PipelineService.SetItemStage] validates the destination against the stage registry, persists
// it, appends a "moved" entry to the audit trail and stores a notification for the acting user.
//
// # Error Handling
//
// Services use sentinel errors from the shared package:
//   - [shared.ErrItemNotFound] : Vacancy or candidate ID not found
//   - [shared.ErrStageUnknown] : Stage is not registered for the item kind
//   - [shared.ErrInvalidKind] : Kind is neither vacancy nor candidate
//   - [shared.ErrNotificationNotFound] : Notification ID not found
package services
