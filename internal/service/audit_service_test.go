package service

import (
	"context"
	"errors"
	"testing"

	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"
	"github.com/VictorAraujo38/akkadian-test/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService_LogUpdate(t *testing.T) {
	db, _ := testutil.NewMockDB(t)
	store := testutil.NewStore()
	svc := NewAuditService(testutil.NewLogger(), store.AuditRepo())
	actor := uuid.New()
	appointmentID := uuid.New().String()

	require.NoError(t, svc.LogCreate(context.Background(), db, &actor, entity.AuditActionAppointmentCreate, entity.AuditEntityAppointment, appointmentID, map[string]string{"status": "Scheduled"}))
	require.NoError(t, svc.LogUpdate(context.Background(), db, &actor, entity.AuditActionAppointmentCancel, entity.AuditEntityAppointment, appointmentID, "Scheduled", "Cancelled"))

	logs := store.AuditLogs()
	require.Len(t, logs, 2)
	assert.Equal(t, entity.AuditActionAppointmentCreate, logs[0].Action)
	assert.Nil(t, logs[0].Metadata["old_value"])
	assert.Equal(t, "Scheduled", logs[1].Metadata["old_value"])
	assert.Equal(t, "Cancelled", logs[1].Metadata["new_value"])
	assert.Equal(t, appointmentID, logs[1].Metadata["entity_id"])
	assert.Equal(t, &actor, logs[1].UserID)
}

func TestAuditService_RepositoryError(t *testing.T) {
	db, _ := testutil.NewMockDB(t)
	store := testutil.NewStore()
	store.Err = errors.New("disk full")
	svc := NewAuditService(testutil.NewLogger(), store.AuditRepo())

	err := svc.LogCreate(context.Background(), db, nil, entity.AuditActionCredentialCreate, entity.AuditEntityCredential, "1", nil)
	assert.Error(t, err)
}
