package audition

import (
	"context"
	"errors"
	"net/url"
	"time"

	"dreamhi/database"
	liveSessionRepo "dreamhi/database/repository/livesession"
	processRepo "dreamhi/database/repository/process"
	"dreamhi/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionBinder owns the single live session of a live-video process.
//
// Saving twice for the same process updates the file URL and keeps the
// session id that was minted on the first save.
type SessionBinder struct {
	Processes    processRepo.ProcessRepository
	Sessions     liveSessionRepo.LiveSessionRepository
	NewSessionID func() string
	Now          func() time.Time
	Logger       *zap.Logger
}

// NewSessionID mints an opaque join token.
func NewSessionID() string {
	return "ses_" + uuid.New().String()
}

func (b *SessionBinder) SaveSession(ctx context.Context, processID, fileURL string) (*models.LiveSession, error) {
	process, err := loadProcess(ctx, b.Processes, processID)
	if err != nil {
		return nil, err
	}
	if process.Stage != models.StageLiveVideo {
		return nil, InvalidArgument("process %s is a %s stage, not a live video audition", processID, process.Stage)
	}
	if !isHTTPURL(fileURL) {
		return nil, InvalidArgument("file url %q must be an absolute http(s) url", fileURL)
	}

	newID := NewSessionID
	if b.NewSessionID != nil {
		newID = b.NewSessionID
	}
	now := time.Now()
	if b.Now != nil {
		now = b.Now()
	}

	session, err := b.Sessions.Upsert(ctx, processID, newID(), fileURL, now)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, Conflict("session of process %s is being created concurrently", processID)
		}
		return nil, Internal(err, "failed to save session")
	}
	b.Logger.Info("Live session saved",
		zap.String("processId", processID),
		zap.Bool("created", session.CreatedAt.Equal(session.UpdatedAt)),
	)
	return session, nil
}

func (b *SessionBinder) FindFileURL(ctx context.Context, processID string) (string, error) {
	session, err := b.find(ctx, processID)
	if err != nil {
		return "", err
	}
	return session.FileURL, nil
}

func (b *SessionBinder) FindSessionID(ctx context.Context, processID string) (string, error) {
	session, err := b.find(ctx, processID)
	if err != nil {
		return "", err
	}
	return session.SessionID, nil
}

func (b *SessionBinder) find(ctx context.Context, processID string) (*models.LiveSession, error) {
	session, err := b.Sessions.GetByProcessID(ctx, processID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, NotFound("no live session saved for process %s", processID)
		}
		return nil, Internal(err, "failed to load session")
	}
	return session, nil
}

func isHTTPURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
