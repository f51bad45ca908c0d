package expiry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Incorpora-api/internal/application/expiry"
	"github.com/jhoicas/Incorpora-api/internal/application/ports"
	"github.com/jhoicas/Incorpora-api/internal/domain/entity"
	"github.com/jhoicas/Incorpora-api/internal/domain/repository"
	"github.com/jhoicas/Incorpora-api/pkg/logger"
)

// ─────────────────────────────────────────────────────────────
// Dobles en memoria
// ─────────────────────────────────────────────────────────────

// fakeExpiryRepo guarda los registros en memoria y persiste MarkNotified,
// para poder ejecutar el barrido dos veces contra el mismo estado.
type fakeExpiryRepo struct {
	repository.RegistrationRepository
	regs        []*entity.Registration
	markErr     error
	markedIDs   []string
	listErr     error
	listedTimes int
}

func (f *fakeExpiryRepo) ListExpiryCandidates(ctx context.Context, today time.Time) ([]*entity.Registration, error) {
	f.listedTimes++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.regs, nil
}

func (f *fakeExpiryRepo) MarkNotified(ctx context.Context, id string, sentAt time.Time) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.markedIDs = append(f.markedIDs, id)
	for _, r := range f.regs {
		if r.ID == id {
			t := sentAt
			r.ExpiryNotificationSentAt = &t
			r.IsExpired = true
		}
	}
	return nil
}

// fakeUserStore resuelve nombres de titulares por correo.
type fakeUserStore struct {
	repository.UserRepository
	names   map[string]string // email → nombre
	findErr error
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	name, ok := f.names[email]
	if !ok {
		return nil, nil
	}
	return &entity.User{Email: email, Name: name}, nil
}

type fakeMailer struct {
	failFor map[string]bool // correos destino que fallan
	sent    []ports.ExpiryNotice
}

func (f *fakeMailer) SendStatusUpdate(ctx context.Context, n ports.StatusNotice) error { return nil }

func (f *fakeMailer) SendExpiryNotice(ctx context.Context, n ports.ExpiryNotice) error {
	if f.failFor[n.To] {
		return errors.New("smtp: 451 temporal")
	}
	f.sent = append(f.sent, n)
	return nil
}

func expiredReg(id, email string, today time.Time) *entity.Registration {
	exp := today.AddDate(0, 0, -3)
	return &entity.Registration{
		ID:          id,
		UserEmail:   email,
		CompanyName: "Empresa " + id,
		Status:      entity.StatusCompleted,
		CurrentStep: entity.StepIncorporate,
		ExpireDate:  &exp,
		IsExpired:   true,
	}
}

// ─────────────────────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────────────────────

func TestSweep_NotificaYMarcaUnaVezPorDia(t *testing.T) {
	today := time.Date(2025, time.June, 10, 8, 0, 0, 0, time.UTC)
	repo := &fakeExpiryRepo{regs: []*entity.Registration{
		expiredReg("r1", "a@acme.com", today),
		expiredReg("r2", "b@beta.com", today),
	}}
	mailer := &fakeMailer{}
	users := &fakeUserStore{}
	uc := expiry.NewSweepUseCase(repo, users, mailer, logger.Nop()).
		WithClock(func() time.Time { return today })

	report, err := uc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Scanned)
	assert.Equal(t, 2, report.Notified)
	assert.Equal(t, 0, report.Skipped)
	assert.Len(t, mailer.sent, 2)
	assert.ElementsMatch(t, []string{"r1", "r2"}, repo.markedIDs)

	// Segunda pasada el mismo día: nadie debe recibir otro correo.
	report2, err := uc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report2.Scanned)
	assert.Equal(t, 0, report2.Notified, "el marcado del día actual suprime el reenvío")
	assert.Equal(t, 2, report2.Skipped)
	assert.Len(t, mailer.sent, 2)

	// Al día siguiente el registro sigue vencido: vuelve a deberse aviso.
	tomorrow := today.AddDate(0, 0, 1)
	report3, err := uc.WithClock(func() time.Time { return tomorrow }).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report3.Notified)
	assert.Len(t, mailer.sent, 4)
}

func TestSweep_SinEmailSeOmite(t *testing.T) {
	today := time.Date(2025, time.June, 10, 8, 0, 0, 0, time.UTC)
	repo := &fakeExpiryRepo{regs: []*entity.Registration{
		expiredReg("r1", "", today),
	}}
	mailer := &fakeMailer{}
	users := &fakeUserStore{}
	uc := expiry.NewSweepUseCase(repo, users, mailer, logger.Nop()).
		WithClock(func() time.Time { return today })

	report, err := uc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Scanned)
	assert.Equal(t, 0, report.Notified)
	assert.Equal(t, 1, report.Skipped)
	assert.Empty(t, mailer.sent)
}

func TestSweep_FalloDeUnRegistroNoDetieneElLote(t *testing.T) {
	today := time.Date(2025, time.June, 10, 8, 0, 0, 0, time.UTC)
	repo := &fakeExpiryRepo{regs: []*entity.Registration{
		expiredReg("r1", "falla@acme.com", today),
		expiredReg("r2", "ok@beta.com", today),
	}}
	mailer := &fakeMailer{failFor: map[string]bool{"falla@acme.com": true}}
	users := &fakeUserStore{}
	uc := expiry.NewSweepUseCase(repo, users, mailer, logger.Nop()).
		WithClock(func() time.Time { return today })

	report, err := uc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Notified)
	assert.Equal(t, []string{"r2"}, repo.markedIDs, "solo se marca el envío exitoso")

	// El registro fallido sigue candidato en la próxima pasada.
	mailer.failFor = nil
	report2, err := uc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report2.Notified)
	assert.Contains(t, repo.markedIDs, "r1")
}

func TestSweep_ElCorreoLlevaElNombreDelTitular(t *testing.T) {
	today := time.Date(2025, time.June, 10, 8, 0, 0, 0, time.UTC)
	repo := &fakeExpiryRepo{regs: []*entity.Registration{
		expiredReg("r1", "a@acme.com", today),
		expiredReg("r2", "b@beta.com", today),
	}}
	mailer := &fakeMailer{}
	users := &fakeUserStore{names: map[string]string{"a@acme.com": "Ana Pérez"}}
	uc := expiry.NewSweepUseCase(repo, users, mailer, logger.Nop()).
		WithClock(func() time.Time { return today })

	report, err := uc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Notified)
	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "Ana Pérez", mailer.sent[0].Name)
	assert.Empty(t, mailer.sent[1].Name, "sin usuario conocido el saludo queda genérico")
}

func TestSweep_FalloAlResolverNombreNoDetieneElEnvio(t *testing.T) {
	today := time.Date(2025, time.June, 10, 8, 0, 0, 0, time.UTC)
	repo := &fakeExpiryRepo{regs: []*entity.Registration{
		expiredReg("r1", "a@acme.com", today),
	}}
	mailer := &fakeMailer{}
	users := &fakeUserStore{findErr: errors.New("conexión perdida")}
	uc := expiry.NewSweepUseCase(repo, users, mailer, logger.Nop()).
		WithClock(func() time.Time { return today })

	report, err := uc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Notified)
	require.Len(t, mailer.sent, 1)
	assert.Empty(t, mailer.sent[0].Name)
}

func TestSweep_ErrorDeListadoSePropaga(t *testing.T) {
	repo := &fakeExpiryRepo{listErr: errors.New("conexión perdida")}
	uc := expiry.NewSweepUseCase(repo, &fakeUserStore{}, &fakeMailer{}, logger.Nop())

	report, err := uc.Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, report)
}
