package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/audit"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/apierr"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/ctxutil"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/repos"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/saga"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/tasks"
	"github.com/PontyConecta/ponty-conecta-sub002/internal/types"
)

type testEnv struct {
	db *gorm.DB

	users         repos.UserRepo
	brands        repos.BrandRepo
	creators      repos.CreatorRepo
	campaigns     repos.CampaignRepo
	applications  repos.ApplicationRepo
	deliveries    repos.DeliveryRepo
	disputes      repos.DisputeRepo
	auditLogs     repos.AuditLogRepo
	notifications repos.NotificationRepo
	missions      repos.MissionRepo

	sagaExec   *saga.Executor
	auditRec   *audit.Recorder
	dispatcher *tasks.Dispatcher
	switcher   *ProfileSwitcher

	profile      ProfileService
	campaign     CampaignService
	application  ApplicationService
	delivery     DeliveryService
	admin        AdminService
	notification NotificationService
	mission      MissionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&types.User{}, &types.Brand{}, &types.Creator{},
		&types.Campaign{}, &types.Application{}, &types.Delivery{},
		&types.Dispute{}, &types.AuditLog{}, &types.Notification{}, &types.Mission{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	log := logger.NewNop()
	env := &testEnv{
		db:            db,
		users:         repos.NewUserRepo(db, log),
		brands:        repos.NewBrandRepo(db, log),
		creators:      repos.NewCreatorRepo(db, log),
		campaigns:     repos.NewCampaignRepo(db, log),
		applications:  repos.NewApplicationRepo(db, log),
		deliveries:    repos.NewDeliveryRepo(db, log),
		disputes:      repos.NewDisputeRepo(db, log),
		auditLogs:     repos.NewAuditLogRepo(db, log),
		notifications: repos.NewNotificationRepo(db, log),
		missions:      repos.NewMissionRepo(db, log),
	}
	env.sagaExec = saga.NewExecutor(log)
	env.auditRec = audit.NewRecorder(log, env.auditLogs)
	env.dispatcher = tasks.NewDispatcher(log, 4, 5*time.Second)
	env.switcher = NewProfileSwitcher(log, env.brands, env.creators, env.sagaExec, env.auditRec)

	env.notification = NewNotificationService(log, env.notifications)
	env.mission = NewMissionService(log, env.missions, env.brands, env.creators)
	env.profile = NewProfileService(log, env.users, env.brands, env.creators, env.switcher, env.mission, env.dispatcher, nil, nil)
	env.campaign = NewCampaignService(log, env.campaigns, env.brands, env.creators)
	env.application = NewApplicationService(log, env.applications, env.campaigns, env.deliveries, env.brands, env.creators, env.sagaExec, env.notification, env.dispatcher)
	env.delivery = NewDeliveryService(log, env.deliveries, env.disputes, env.brands, env.creators, env.sagaExec, env.notification, env.dispatcher)
	env.admin = NewAdminService(log, env.users, env.brands, env.creators, env.disputes, env.deliveries, env.auditLogs, env.switcher, env.sagaExec, env.auditRec, env.notification, env.dispatcher)
	return env
}

func wantCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("got nil error, want code %s", code)
	}
	ae := apierr.From(err)
	if ae.Code != code {
		t.Fatalf("got code %s (%v), want %s", ae.Code, err, code)
	}
}

func authedCtx(userID uuid.UUID, role string) context.Context {
	return ctxutil.WithIdentity(context.Background(), &ctxutil.Identity{
		UserID: userID,
		Email:  userID.String() + "@example.test",
		Role:   role,
	})
}

func (e *testEnv) seedUser(t *testing.T, role string) *types.User {
	t.Helper()
	now := time.Now().UTC()
	u := &types.User{
		ID:        uuid.New(),
		Email:     uuid.NewString() + "@example.test",
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := e.users.Create(context.Background(), []*types.User{u}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func (e *testEnv) seedBrand(t *testing.T, userID uuid.UUID) *types.Brand {
	t.Helper()
	now := time.Now().UTC()
	b := &types.Brand{
		ID:             uuid.New(),
		UserID:         userID,
		CompanyName:    "Acme Media",
		AccountState:   types.AccountStateReady,
		OnboardingStep: types.OnboardingStepFinal,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := e.brands.Create(context.Background(), []*types.Brand{b}); err != nil {
		t.Fatalf("seed brand: %v", err)
	}
	return b
}

func (e *testEnv) seedCreator(t *testing.T, userID uuid.UUID) *types.Creator {
	t.Helper()
	now := time.Now().UTC()
	c := &types.Creator{
		ID:             uuid.New(),
		UserID:         userID,
		DisplayName:    "Jo Maker",
		AccountState:   types.AccountStateReady,
		OnboardingStep: types.OnboardingStepFinal,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := e.creators.Create(context.Background(), []*types.Creator{c}); err != nil {
		t.Fatalf("seed creator: %v", err)
	}
	return c
}

func (e *testEnv) seedCampaign(t *testing.T, brandID uuid.UUID, status string) *types.Campaign {
	t.Helper()
	now := time.Now().UTC()
	c := &types.Campaign{
		ID:        uuid.New(),
		BrandID:   brandID,
		Title:     "Spring launch",
		Brief:     "Short-form video series",
		Budget:    1500,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := e.campaigns.Create(context.Background(), []*types.Campaign{c}); err != nil {
		t.Fatalf("seed campaign: %v", err)
	}
	return c
}

func (e *testEnv) seedDelivery(t *testing.T, campaignID, brandID, creatorID uuid.UUID, status string) *types.Delivery {
	t.Helper()
	now := time.Now().UTC()
	d := &types.Delivery{
		ID:         uuid.New(),
		CampaignID: campaignID,
		BrandID:    brandID,
		CreatorID:  creatorID,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := e.deliveries.Create(context.Background(), []*types.Delivery{d}); err != nil {
		t.Fatalf("seed delivery: %v", err)
	}
	return d
}
