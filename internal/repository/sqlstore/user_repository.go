package sqlstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"jobboard/internal/common"
	"jobboard/internal/domain/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, account user.User) (*user.User, error) {
	if account.ID == "" {
		account.ID = common.NewUUID()
	}
	row := toUserRow(account)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, wrapError(err, "failed to create user")
	}
	return fromUserRow(row), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		return nil, wrapError(err, "failed to load user")
	}
	return fromUserRow(row), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).Where("email = ?", email).Take(&row).Error; err != nil {
		return nil, wrapError(err, "failed to load user")
	}
	return fromUserRow(row), nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string, exclude common.UUID) (bool, error) {
	return r.exists(ctx, "username = ?", username, exclude)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string, exclude common.UUID) (bool, error) {
	return r.exists(ctx, "email = ?", email, exclude)
}

func (r *UserRepository) exists(ctx context.Context, condition string, value string, exclude common.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&userRow{}).Where(condition, value)
	if exclude != "" {
		query = query.Where("id <> ?", exclude)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, wrapError(err, "failed to check user")
	}
	return count > 0, nil
}

func (r *UserRepository) Update(ctx context.Context, account user.User) (*user.User, error) {
	result := r.db.WithContext(ctx).Model(&userRow{}).Where("id = ?", account.ID).Updates(map[string]any{
		"username":   account.Username,
		"first_name": account.FirstName,
		"last_name":  account.LastName,
		"email":      account.Email,
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return nil, wrapError(result.Error, "failed to update user")
	}
	return r.GetByID(ctx, account.ID)
}

// Delete removes the account and everything that hangs off it in one
// transaction, so it does not depend on the database enforcing cascades.
func (r *UserRepository) Delete(ctx context.Context, id common.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		students := tx.Model(&studentRow{}).Select("id").Where("user_id = ?", id)
		companies := tx.Model(&companyRow{}).Select("id").Where("user_id = ?", id)
		offers := tx.Model(&jobOfferRow{}).Select("id").Where("company_id IN (?)", companies)

		if err := tx.Where("student_id IN (?) OR job_offer_id IN (?)", students, offers).Delete(&postulationRow{}).Error; err != nil {
			return wrapError(err, "failed to delete postulations")
		}
		if err := tx.Where("company_id IN (?)", companies).Delete(&jobOfferRow{}).Error; err != nil {
			return wrapError(err, "failed to delete job offers")
		}
		for _, model := range []any{&studentRow{}, &companyRow{}, &sessionRow{}} {
			if err := tx.Where("user_id = ?", id).Delete(model).Error; err != nil {
				return wrapError(err, "failed to delete user data")
			}
		}
		result := tx.Where("id = ?", id).Delete(&userRow{})
		if result.Error != nil {
			return wrapError(result.Error, "failed to delete user")
		}
		if result.RowsAffected == 0 {
			return errNotFound()
		}
		return nil
	})
}

// RegisterFailedLogin bumps the counter in the database so concurrent
// failures are never lost.
func (r *UserRepository) RegisterFailedLogin(ctx context.Context, id common.UUID, at time.Time) (*user.User, error) {
	result := incrementFailedLogins(r.db.WithContext(ctx), id, at)
	if result.Error != nil {
		return nil, wrapError(result.Error, "failed to record failed login")
	}
	if result.RowsAffected == 0 {
		return nil, errNotFound()
	}
	return r.GetByID(ctx, id)
}

func incrementFailedLogins(tx *gorm.DB, id common.UUID, at time.Time) *gorm.DB {
	return tx.Model(&userRow{}).Where("id = ?", id).Updates(map[string]any{
		"failed_login_attempts": gorm.Expr("failed_login_attempts + 1"),
		"last_failed_login":     at,
	})
}

func (r *UserRepository) RegisterSuccessfulLogin(ctx context.Context, id common.UUID, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&userRow{}).Where("id = ?", id).Updates(map[string]any{
		"failed_login_attempts": 0,
		"last_login":            at,
	}).Error
	return wrapError(err, "failed to record login")
}

func toUserRow(account user.User) userRow {
	return userRow{
		ID:                  account.ID,
		Username:            account.Username,
		FirstName:           account.FirstName,
		LastName:            account.LastName,
		Email:               account.Email,
		PasswordHash:        account.PasswordHash,
		UserType:            string(account.UserType),
		FailedLoginAttempts: account.FailedLoginAttempts,
		LastFailedLogin:     account.LastFailedLogin,
		LastLogin:           account.LastLogin,
		DateJoined:          account.DateJoined,
		UpdatedAt:           account.UpdatedAt,
	}
}

func fromUserRow(row userRow) *user.User {
	return &user.User{
		ID:                  row.ID,
		Username:            row.Username,
		FirstName:           row.FirstName,
		LastName:            row.LastName,
		Email:               row.Email,
		PasswordHash:        row.PasswordHash,
		UserType:            user.Role(row.UserType),
		FailedLoginAttempts: row.FailedLoginAttempts,
		LastFailedLogin:     row.LastFailedLogin,
		LastLogin:           row.LastLogin,
		DateJoined:          row.DateJoined,
		UpdatedAt:           row.UpdatedAt,
	}
}
