package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// =============================================================================
// AUDIT EVENT TYPES
// =============================================================================

// AuditEventType names one kind of security-relevant event.
type AuditEventType string

const (
	// Session lifecycle
	AuditSessionRestore AuditEventType = "session_restore"
	AuditSessionAbsent  AuditEventType = "session_absent"

	// Authentication
	AuditLogin       AuditEventType = "login"
	AuditLoginFailed AuditEventType = "login_failed"
	AuditLogout      AuditEventType = "logout"

	// Verification
	AuditKYCVerified AuditEventType = "kyc_verified"
	AuditKYCSkipped  AuditEventType = "kyc_skipped"
	AuditKYCRejected AuditEventType = "kyc_rejected"
	AuditKYCUpdated  AuditEventType = "kyc_updated"

	// Access gate
	AuditAccessDenied AuditEventType = "access_denied"
)

// AuditEvent is one line of the audit trail.
type AuditEvent struct {
	EventType AuditEventType
	UserID    string
	Role      string
	View      string // view the event concerns, if any
	Success   bool
	Error     string
	Message   string
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (e AuditEvent) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("event", string(e.EventType))
	if e.UserID != "" {
		enc.AddString("user", e.UserID)
	}
	if e.Role != "" {
		enc.AddString("role", e.Role)
	}
	if e.View != "" {
		enc.AddString("view", e.View)
	}
	enc.AddBool("success", e.Success)
	if e.Error != "" {
		enc.AddString("error", e.Error)
	}
	return nil
}

// =============================================================================
// AUDIT LOGGER
// =============================================================================

var (
	auditFile   *os.File
	auditZap    *zap.Logger
	auditMu     sync.Mutex
	auditLogger = &AuditLogger{}
)

// AuditLogger writes audit events as JSON lines to .gce/logs/<date>_audit.jsonl.
type AuditLogger struct {
	userID string
	role   string
}

// InitAudit opens the audit trail. It is a no-op unless debug mode is on.
func InitAudit() error {
	if !IsDebugMode() {
		return nil
	}

	auditMu.Lock()
	defer auditMu.Unlock()

	if auditFile != nil {
		return nil // Already initialized
	}

	configMu.RLock()
	dir := logsDir
	configMu.RUnlock()

	date := time.Now().Format("2006-01-02")
	auditPath := filepath.Join(dir, fmt.Sprintf("%s_audit.jsonl", date))

	file, err := os.OpenFile(auditPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	auditFile = file

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.EpochMillisTimeEncoder
	encCfg.LevelKey = ""
	auditZap = zap.New(zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(file), zapcore.InfoLevel))
	return nil
}

// CloseAudit closes the audit log file
func CloseAudit() {
	auditMu.Lock()
	defer auditMu.Unlock()

	if auditZap != nil {
		_ = auditZap.Sync()
		auditZap = nil
	}
	if auditFile != nil {
		auditFile.Close()
		auditFile = nil
	}
}

// Audit returns the global audit logger
func Audit() *AuditLogger {
	return auditLogger
}

// AuditFor returns an audit logger that stamps every event with the user.
func AuditFor(userID, role string) *AuditLogger {
	return &AuditLogger{userID: userID, role: role}
}

// Log writes an audit event
func (a *AuditLogger) Log(event AuditEvent) {
	auditMu.Lock()
	defer auditMu.Unlock()

	if auditZap == nil {
		return
	}
	if event.UserID == "" {
		event.UserID = a.userID
	}
	if event.Role == "" {
		event.Role = a.role
	}
	auditZap.Info(event.Message, zap.Inline(event))
}

// =============================================================================
// CONVENIENCE METHODS FOR COMMON EVENTS
// =============================================================================

// SessionRestored logs a successful restore on startup
func (a *AuditLogger) SessionRestored(view string) {
	a.Log(AuditEvent{
		EventType: AuditSessionRestore,
		View:      view,
		Success:   true,
		Message:   "session restored",
	})
}

// SessionAbsent logs a startup with no usable session
func (a *AuditLogger) SessionAbsent(err error) {
	e := AuditEvent{EventType: AuditSessionAbsent, Success: err == nil, Message: "no session"}
	if err != nil {
		e.Error = err.Error()
	}
	a.Log(e)
}

// Login logs a login attempt
func (a *AuditLogger) Login(view string, err error) {
	if err != nil {
		a.Log(AuditEvent{
			EventType: AuditLoginFailed,
			Error:     err.Error(),
			Message:   "login failed",
		})
		return
	}
	a.Log(AuditEvent{
		EventType: AuditLogin,
		View:      view,
		Success:   true,
		Message:   "login",
	})
}

// Logout logs a logout. err is a failure to clear the stored session.
func (a *AuditLogger) Logout(err error) {
	e := AuditEvent{EventType: AuditLogout, Success: err == nil, Message: "logout"}
	if err != nil {
		e.Error = err.Error()
	}
	a.Log(e)
}

// KYC logs a verification outcome
func (a *AuditLogger) KYC(eventType AuditEventType, err error) {
	e := AuditEvent{EventType: eventType, Success: err == nil, Message: string(eventType)}
	if err != nil {
		e.Error = err.Error()
	}
	a.Log(e)
}

// AccessDenied logs a gate denial
func (a *AuditLogger) AccessDenied(view, placeholder string) {
	a.Log(AuditEvent{
		EventType: AuditAccessDenied,
		View:      view,
		Message:   placeholder,
	})
}
