package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/meunps/platform/internal/domain"
	"github.com/meunps/platform/internal/service/account"
	"github.com/meunps/platform/internal/service/admin"
	"github.com/meunps/platform/internal/service/affiliate"
	"github.com/meunps/platform/internal/service/campaign"
	"github.com/meunps/platform/internal/service/response"
	"github.com/meunps/platform/internal/service/user"
)

func setupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	return db, mock, func() { db.Close() }
}

func expectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

// =============================================================================
// USER REPO
// =============================================================================

func TestUserRepo_CreateDuplicateEmail(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	repo := NewUserRepo(db)
	err := repo.Create(context.Background(), &domain.User{
		ID: "u1", Email: "maria@example.com", PasswordHash: "x", Name: "Maria", Role: domain.RoleUser,
	})
	if err != user.ErrEmailTaken {
		t.Errorf("Create() = %v, want ErrEmailTaken", err)
	}
	expectationsMet(t, mock)
}

func TestUserRepo_ByEmailNotFound(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	repo := NewUserRepo(db)
	_, err := repo.ByEmail(context.Background(), "ghost@example.com")
	if err != user.ErrNotFound {
		t.Errorf("ByEmail() = %v, want ErrNotFound", err)
	}
	expectationsMet(t, mock)
}

// =============================================================================
// CAMPAIGN REPO
// =============================================================================

func campaignRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "user_id", "name", "description", "start_date", "end_date", "active",
		"default_source_id", "default_situation_id", "default_group_id",
		"survey_customization", "automation", "created_at", "updated_at",
	}).AddRow("c1", "u1", "Pesquisa", "", now, nil, true,
		nil, nil, nil, `{"primary_color":"#4F46E5"}`, `{}`, now, now)
}

func TestCampaignRepo_GetScopesToOwner(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM campaigns").
		WithArgs("c1", "u1").
		WillReturnRows(campaignRows())

	repo := NewCampaignRepo(db)
	c, err := repo.Get(context.Background(), "u1", "c1")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if c.Customization.PrimaryColor != "#4F46E5" {
		t.Errorf("customization not decoded: %+v", c.Customization)
	}
	expectationsMet(t, mock)
}

func TestCampaignRepo_GetForeignIsNotFound(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	// The owner filter makes a foreign campaign look missing.
	mock.ExpectQuery("SELECT (.+) FROM campaigns").
		WithArgs("c1", "intruder").
		WillReturnError(sql.ErrNoRows)

	repo := NewCampaignRepo(db)
	_, err := repo.Get(context.Background(), "intruder", "c1")
	if err != campaign.ErrNotFound {
		t.Errorf("Get() = %v, want ErrNotFound", err)
	}
	expectationsMet(t, mock)
}

func TestCampaignRepo_UpdateNoRowsIsNotFound(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectExec("UPDATE campaigns SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewCampaignRepo(db)
	name := "renamed"
	err := repo.Update(context.Background(), "intruder", "c1", campaign.UpdateFields{Name: &name})
	if err != campaign.ErrNotFound {
		t.Errorf("Update() = %v, want ErrNotFound", err)
	}
	expectationsMet(t, mock)
}

func TestCampaignRepo_UpdateNothingToDo(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	// No fields set: no SQL should run at all.
	repo := NewCampaignRepo(db)
	if err := repo.Update(context.Background(), "u1", "c1", campaign.UpdateFields{}); err != nil {
		t.Errorf("Update() error: %v", err)
	}
	expectationsMet(t, mock)
}

// =============================================================================
// RESPONSE REPO
// =============================================================================

func TestResponseRepo_SubmitInsertsInCampaignTx(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT active, start_date, end_date").
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"active", "start_date", "end_date"}).
			AddRow(true, time.Now().Add(-time.Hour), nil))
	mock.ExpectExec("INSERT INTO nps_responses").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	repo := NewResponseRepo(db)
	err := repo.Submit(context.Background(), &domain.NpsResponse{
		ID: "r1", CampaignID: "c1", Score: 9,
	})
	if err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	expectationsMet(t, mock)
}

func TestResponseRepo_SubmitClosedCampaignRollsBack(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT active, start_date, end_date").
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"active", "start_date", "end_date"}).
			AddRow(false, time.Now().Add(-time.Hour), nil))
	mock.ExpectRollback()

	repo := NewResponseRepo(db)
	err := repo.Submit(context.Background(), &domain.NpsResponse{
		ID: "r1", CampaignID: "c1", Score: 9,
	})
	if err != response.ErrCampaignClosed {
		t.Errorf("Submit() = %v, want ErrCampaignClosed", err)
	}
	expectationsMet(t, mock)
}

func TestResponseRepo_SubmitUnknownCampaign(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT active, start_date, end_date").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	repo := NewResponseRepo(db)
	err := repo.Submit(context.Background(), &domain.NpsResponse{
		ID: "r1", CampaignID: "ghost", Score: 9,
	})
	if err != response.ErrCampaignNotFound {
		t.Errorf("Submit() = %v, want ErrCampaignNotFound", err)
	}
	expectationsMet(t, mock)
}

func TestResponseRepo_ListUnpaginatedReadsEveryRow(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("c1", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	// Anchored on the tail: an unpaginated read must not append LIMIT, and
	// the campaign id must be the only bound argument.
	mock.ExpectQuery(`ORDER BY created_at ASC\s*$`).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "campaign_id", "score", "feedback",
			"source_id", "situation_id", "group_id", "form_responses", "created_at",
		}).
			AddRow("r1", "c1", 10, "", nil, nil, nil, "{}", time.Now()).
			AddRow("r2", "c1", 0, "", nil, nil, nil, "{}", time.Now()))

	repo := NewResponseRepo(db)
	out, err := repo.ListByCampaign(context.Background(), "u1", "c1", response.ListFilter{})
	if err != nil {
		t.Fatalf("ListByCampaign() error: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("ListByCampaign() returned %d rows, want 2", len(out))
	}
	expectationsMet(t, mock)
}

func TestResponseRepo_ListPaginatedBindsLimitAndOffset(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("c1", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`LIMIT \$2 OFFSET \$3`).
		WithArgs("c1", 25, 50).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "campaign_id", "score", "feedback",
			"source_id", "situation_id", "group_id", "form_responses", "created_at",
		}))

	repo := NewResponseRepo(db)
	_, err := repo.ListByCampaign(context.Background(), "u1", "c1", response.ListFilter{Limit: 25, Offset: 50})
	if err != nil {
		t.Fatalf("ListByCampaign() error: %v", err)
	}
	expectationsMet(t, mock)
}

// =============================================================================
// ACCOUNT REPO
// =============================================================================

func TestAccountRepo_InsertProfileConflict(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO user_profiles").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "user_profiles_user_id_key"})

	repo := NewAccountRepo(db)
	err := repo.InsertProfile(context.Background(), &domain.UserProfile{
		ID: "p1", UserID: "u1", Preferences: domain.DefaultPreferences(),
	})
	if err != account.ErrConflict {
		t.Errorf("InsertProfile() = %v, want ErrConflict", err)
	}
	expectationsMet(t, mock)
}

// =============================================================================
// AFFILIATE REPO
// =============================================================================

func TestAffiliateRepo_CreateReferralRecomputesInTx(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO affiliate_referrals").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE user_affiliates SET").
		WithArgs("a1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewAffiliateRepo(db)
	err := repo.CreateReferral(context.Background(), &domain.AffiliateReferral{
		ID: "r1", AffiliateID: "a1", ReferredEmail: "x@example.com",
		Commission: 50, Status: domain.ReferralPending,
	})
	if err != nil {
		t.Fatalf("CreateReferral() error: %v", err)
	}
	expectationsMet(t, mock)
}

func TestAffiliateRepo_UpdateForeignReferralRollsBack(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE affiliate_referrals SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := NewAffiliateRepo(db)
	err := repo.UpdateReferralStatus(context.Background(), "a2", "r1", domain.ReferralPaid)
	if err != affiliate.ErrReferralNotFound {
		t.Errorf("UpdateReferralStatus() = %v, want ErrReferralNotFound", err)
	}
	expectationsMet(t, mock)
}

// =============================================================================
// ADMIN REPO
// =============================================================================

func TestAdminRepo_DeactivateFansOutInOneTx(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users SET is_deactivated = true").
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE campaigns SET active = false").
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	repo := NewAdminRepo(db)
	if err := repo.Deactivate(context.Background(), "u1"); err != nil {
		t.Fatalf("Deactivate() error: %v", err)
	}
	expectationsMet(t, mock)
}

func TestAdminRepo_DeactivateUnknownUserRollsBack(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users SET is_deactivated = true").
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := NewAdminRepo(db)
	if err := repo.Deactivate(context.Background(), "ghost"); err != admin.ErrUserNotFound {
		t.Errorf("Deactivate() = %v, want ErrUserNotFound", err)
	}
	expectationsMet(t, mock)
}

func TestAdminRepo_PermissionsMissingRow(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM user_admins").
		WithArgs("u1").
		WillReturnError(sql.ErrNoRows)

	repo := NewAdminRepo(db)
	_, ok, err := repo.AdminPermissions(context.Background(), "u1")
	if err != nil {
		t.Fatalf("AdminPermissions() error: %v", err)
	}
	if ok {
		t.Error("expected ok=false for missing user_admins row")
	}
	expectationsMet(t, mock)
}
