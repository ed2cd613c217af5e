// Package audit defines the append-only action log. Entries are never
// updated or deleted by application logic, and they only hold weak
// references to the users and tickets they mention: history outlives the
// entities it describes.
package audit

import (
	"strings"
	"time"
)

// Action tags the kind of event an entry records. Existing spellings are
// part of the stored data and must not change.
type Action string

const (
	ActionLogin       Action = "LOGIN"
	ActionLogout      Action = "LOGOUT"
	ActionLoginFailed Action = "LOGIN FAILED"

	ActionTicketCreate            Action = "TICKET CREATE"
	ActionTicketStatusChange      Action = "TICKET STATUS CHANGE"
	ActionTicketPriorityChange    Action = "TICKET PRIORITY CHANGE"
	ActionTicketAssignedChange    Action = "TICKET ASSIGNED CHANGE"
	ActionTicketTitleChange       Action = "TICKET TITLE CHANGE"
	ActionTicketDescriptionChange Action = "TICKET DESCRIPTION CHANGE"
	ActionTicketDelete            Action = "TICKET DELETE"
	ActionTicketReassigned        Action = "TICKET REASSIGNED"

	ActionUserUsernameChange Action = "USER USERNAME CHANGE"
	ActionUserEmailChange    Action = "USER EMAIL CHANGE"
	ActionUserRoleChange     Action = "USER ROLE CHANGE"
	ActionUserDelete         Action = "USER DELETE"

	ActionAttachmentUpload   Action = "ATTACHMENT UPLOAD"
	ActionAttachmentDelete   Action = "ATTACHMENT DELETE"
	ActionAttachmentDownload Action = "ATTACHMENT DOWNLOAD"

	ActionEmailSent Action = "EMAIL SENT"
)

func (a Action) String() string {
	return string(a)
}

// Entry is a single audit record. Actor is nil only for failed-login
// events; TicketID is nil when the entry outlived its ticket.
type Entry struct {
	ID           uint
	ActorID      *uint
	TargetUserID *uint
	TicketID     *uint
	Action       Action
	Details      string
	IPAddress    string
	UserAgent    string
	Timestamp    time.Time

	// ActorUsername and TargetUsername are resolved on read for display.
	// They are empty on entries whose user rows no longer exist, and are
	// never written back.
	ActorUsername  string
	TargetUsername string
}

// Filter narrows List results. Actor, Target and Action are substring
// matches against the actor username, target username and action tag.
type Filter struct {
	Actor    string
	Target   string
	Action   string
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

// ActionCount aggregates entries per action for the activity report.
type ActionCount struct {
	Action Action
	Total  int64
}

// ActorCount aggregates entries per actor for the activity report.
type ActorCount struct {
	ActorID  uint
	Username string
	Total    int64
}

// BuildDetails renders the standard PRIMA/DOPO details block: a field line
// when a field is named, old and new values when either is present, then the
// optional extra note.
func BuildDetails(field, oldValue, newValue, extra string) string {
	var parts []string

	if field != "" {
		parts = append(parts, "Campo: "+field)
	}
	if oldValue != "" || newValue != "" {
		parts = append(parts, "PRIMA: "+oldValue)
		parts = append(parts, "DOPO: "+newValue)
	}
	if extra != "" {
		parts = append(parts, extra)
	}

	return strings.Join(parts, "\n")
}
