// Package domain is the root of the domain model. It holds the sentinel
// error taxonomy and the field-level ValidationError shared by every entity.
// The entities themselves live in sub-packages: domain/task, domain/tasklist,
// and domain/user.
package domain
