package postgresadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"electra/contexts/identity-access/principal-service/domain/entities"
	domainerrors "electra/contexts/identity-access/principal-service/domain/errors"
	"electra/contexts/identity-access/principal-service/ports"
	"electra/internal/platform/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

// Migrate creates the identity tables and seeds the role catalog.
func (r *Repository) Migrate(ctx context.Context) error {
	err := r.db.WithContext(ctx).AutoMigrate(
		&roleModel{},
		&principalModel{},
		&voterProfileModel{},
		&partyProfileModel{},
		&staffProfileModel{},
	)
	if err != nil {
		return fmt.Errorf("migrate identity tables: %w", err)
	}
	return r.seedRoles(ctx)
}

func (r *Repository) seedRoles(ctx context.Context) error {
	for _, role := range []entities.Role{entities.RoleAdmin, entities.RoleStaff, entities.RoleParty, entities.RoleVoter} {
		var existing roleModel
		err := r.db.WithContext(ctx).Where("name = ?", string(role)).Take(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("seed roles: %w", err)
		}
		row := roleModel{ID: uuid.NewString(), Name: string(role)}
		if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
			// Concurrent seeders race on the unique name; losing is fine.
			if isUniqueViolation(err) {
				continue
			}
			return fmt.Errorf("seed roles: %w", err)
		}
	}
	return nil
}

func (r *Repository) GetPrincipal(ctx context.Context, id string) (entities.Principal, bool, error) {
	return r.findPrincipal(ctx, "principals.id = ?", strings.TrimSpace(id))
}

func (r *Repository) GetPrincipalByLogin(ctx context.Context, login string) (entities.Principal, bool, error) {
	return r.findPrincipal(ctx, "principals.login = ?", strings.ToLower(strings.TrimSpace(login)))
}

func (r *Repository) GetPrincipalByEmail(ctx context.Context, email string) (entities.Principal, bool, error) {
	return r.findPrincipal(ctx, "principals.email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *Repository) findPrincipal(ctx context.Context, condition string, value string) (entities.Principal, bool, error) {
	var row principalRow
	err := r.db.WithContext(ctx).
		Table("principals").
		Select("principals.*, roles.name AS role_name").
		Joins("JOIN roles ON roles.id = principals.role_id").
		Where(condition, value).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Principal{}, false, nil
		}
		return entities.Principal{}, false, r.logError("identity_repo_get_principal_failed", err)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) CreateAdminPrincipal(ctx context.Context, principal entities.Principal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.insertPrincipal(tx, principal)
	})
}

func (r *Repository) CreateVoterPrincipal(ctx context.Context, principal entities.Principal, profile entities.VoterProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := voterProfileModelFromEntity(profile)
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrDuplicateProfile
			}
			return r.logError("identity_repo_create_voter_failed", err)
		}
		return r.insertPrincipal(tx, principal)
	})
}

func (r *Repository) CreatePartyPrincipal(ctx context.Context, principal entities.Principal, profile entities.PartyProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := partyProfileModelFromEntity(profile)
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrDuplicateProfile
			}
			return r.logError("identity_repo_create_party_failed", err)
		}
		return r.insertPrincipal(tx, principal)
	})
}

func (r *Repository) CreateStaffPrincipal(ctx context.Context, principal entities.Principal, profile entities.StaffProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := staffProfileModelFromEntity(profile)
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrDuplicateProfile
			}
			return r.logError("identity_repo_create_staff_failed", err)
		}
		return r.insertPrincipal(tx, principal)
	})
}

func (r *Repository) insertPrincipal(tx *gorm.DB, principal entities.Principal) error {
	var role roleModel
	if err := tx.Where("name = ?", string(principal.Role)).Take(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerrors.ErrUnknownRole
		}
		return r.logError("identity_repo_resolve_role_failed", err)
	}

	row := principalModelFromEntity(principal, role.ID)
	if err := tx.Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateIdentity
		}
		return r.logError("identity_repo_create_principal_failed", err)
	}
	return nil
}

func (r *Repository) VoterProfileEmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, &voterProfileModel{}, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *Repository) PartyProfileNameExists(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, &partyProfileModel{}, "name = ?", strings.TrimSpace(name))
}

func (r *Repository) StaffProfileEmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, &staffProfileModel{}, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *Repository) exists(ctx context.Context, model any, condition string, value string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(model).Where(condition, value).Count(&count).Error
	if err != nil {
		return false, r.logError("identity_repo_exists_failed", err)
	}
	return count > 0, nil
}

func (r *Repository) GetVoterProfile(ctx context.Context, id string) (entities.VoterProfile, bool, error) {
	var row voterProfileModel
	err := r.db.WithContext(ctx).Where("id = ?", strings.TrimSpace(id)).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.VoterProfile{}, false, nil
		}
		return entities.VoterProfile{}, false, r.logError("identity_repo_get_voter_failed", err)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) GetPartyProfile(ctx context.Context, id string) (entities.PartyProfile, bool, error) {
	var row partyProfileModel
	err := r.db.WithContext(ctx).Where("id = ?", strings.TrimSpace(id)).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.PartyProfile{}, false, nil
		}
		return entities.PartyProfile{}, false, r.logError("identity_repo_get_party_failed", err)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) GetStaffProfile(ctx context.Context, id string) (entities.StaffProfile, bool, error) {
	var row staffProfileModel
	err := r.db.WithContext(ctx).Where("id = ?", strings.TrimSpace(id)).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.StaffProfile{}, false, nil
		}
		return entities.StaffProfile{}, false, r.logError("identity_repo_get_staff_failed", err)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "identity-access/principal-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("identity repository operation failed", fields...)
	if db.Unavailable(err) {
		return fmt.Errorf("%w: %v", domainerrors.ErrUnavailable, err)
	}
	return err
}

type roleModel struct {
	ID   string `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name;uniqueIndex"`
}

func (roleModel) TableName() string {
	return "roles"
}

type principalModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	Login        string    `gorm:"column:login;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	RoleID       string    `gorm:"column:role_id"`
	LinkedKind   string    `gorm:"column:linked_kind"`
	LinkedID     *string   `gorm:"column:linked_id"`
	Active       bool      `gorm:"column:active"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (principalModel) TableName() string {
	return "principals"
}

type principalRow struct {
	principalModel
	RoleName string `gorm:"column:role_name"`
}

func principalModelFromEntity(principal entities.Principal, roleID string) principalModel {
	row := principalModel{
		ID:           strings.TrimSpace(principal.ID),
		Email:        strings.ToLower(strings.TrimSpace(principal.Email)),
		Login:        strings.ToLower(strings.TrimSpace(principal.Login)),
		PasswordHash: principal.PasswordHash,
		RoleID:       roleID,
		LinkedKind:   string(principal.LinkedKind),
		Active:       principal.Active,
		CreatedAt:    principal.CreatedAt.UTC(),
	}
	if strings.TrimSpace(principal.LinkedID) != "" {
		linkedID := strings.TrimSpace(principal.LinkedID)
		row.LinkedID = &linkedID
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (row principalRow) toEntity() entities.Principal {
	principal := entities.Principal{
		ID:           row.ID,
		Email:        row.Email,
		Login:        row.Login,
		PasswordHash: row.PasswordHash,
		Role:         entities.Role(row.RoleName),
		LinkedKind:   entities.LinkedKind(row.LinkedKind),
		Active:       row.Active,
		CreatedAt:    row.CreatedAt.UTC(),
	}
	if row.LinkedID != nil {
		principal.LinkedID = *row.LinkedID
	}
	return principal
}

type voterProfileModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	FullName    string    `gorm:"column:full_name"`
	DateOfBirth time.Time `gorm:"column:date_of_birth"`
	Address     string    `gorm:"column:address"`
	Email       string    `gorm:"column:email;uniqueIndex"`
	Phone       string    `gorm:"column:phone"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (voterProfileModel) TableName() string {
	return "voter_profiles"
}

func voterProfileModelFromEntity(profile entities.VoterProfile) voterProfileModel {
	return voterProfileModel{
		ID:          strings.TrimSpace(profile.ID),
		FullName:    profile.FullName,
		DateOfBirth: profile.DateOfBirth.UTC(),
		Address:     profile.Address,
		Email:       strings.ToLower(strings.TrimSpace(profile.Email)),
		Phone:       profile.Phone,
		CreatedAt:   profile.CreatedAt.UTC(),
	}
}

func (row voterProfileModel) toEntity() entities.VoterProfile {
	return entities.VoterProfile{
		ID:          row.ID,
		FullName:    row.FullName,
		DateOfBirth: row.DateOfBirth.UTC(),
		Address:     row.Address,
		Email:       row.Email,
		Phone:       row.Phone,
		CreatedAt:   row.CreatedAt.UTC(),
	}
}

type partyProfileModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name;uniqueIndex"`
	Abbreviation string    `gorm:"column:abbreviation"`
	Description  string    `gorm:"column:description"`
	LeaderName   string    `gorm:"column:leader_name"`
	Email        string    `gorm:"column:email"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (partyProfileModel) TableName() string {
	return "party_profiles"
}

func partyProfileModelFromEntity(profile entities.PartyProfile) partyProfileModel {
	return partyProfileModel{
		ID:           strings.TrimSpace(profile.ID),
		Name:         strings.TrimSpace(profile.Name),
		Abbreviation: profile.Abbreviation,
		Description:  profile.Description,
		LeaderName:   profile.LeaderName,
		Email:        strings.ToLower(strings.TrimSpace(profile.Email)),
		CreatedAt:    profile.CreatedAt.UTC(),
	}
}

func (row partyProfileModel) toEntity() entities.PartyProfile {
	return entities.PartyProfile{
		ID:           row.ID,
		Name:         row.Name,
		Abbreviation: row.Abbreviation,
		Description:  row.Description,
		LeaderName:   row.LeaderName,
		Email:        row.Email,
		CreatedAt:    row.CreatedAt.UTC(),
	}
}

type staffProfileModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	FullName       string    `gorm:"column:full_name"`
	Email          string    `gorm:"column:email;uniqueIndex"`
	Position       string    `gorm:"column:position"`
	PollingStation string    `gorm:"column:polling_station"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (staffProfileModel) TableName() string {
	return "staff_profiles"
}

func staffProfileModelFromEntity(profile entities.StaffProfile) staffProfileModel {
	return staffProfileModel{
		ID:             strings.TrimSpace(profile.ID),
		FullName:       profile.FullName,
		Email:          strings.ToLower(strings.TrimSpace(profile.Email)),
		Position:       profile.Position,
		PollingStation: profile.PollingStation,
		CreatedAt:      profile.CreatedAt.UTC(),
	}
}

func (row staffProfileModel) toEntity() entities.StaffProfile {
	return entities.StaffProfile{
		ID:             row.ID,
		FullName:       row.FullName,
		Email:          row.Email,
		Position:       row.Position,
		PollingStation: row.PollingStation,
		CreatedAt:      row.CreatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.Repository = (*Repository)(nil)
