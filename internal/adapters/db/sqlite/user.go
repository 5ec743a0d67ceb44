package sqlite

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/databridge-io/databridge/internal/domain"
	"github.com/databridge-io/databridge/internal/idgen"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Search(ctx context.Context, login string, page int) (domain.Page[domain.User], error) {
	q := r.db.WithContext(ctx).Model(&UserModel{})
	if strings.TrimSpace(login) != "" {
		q = q.Where("login LIKE ?", "%"+strings.TrimSpace(login)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return domain.Page[domain.User]{}, err
	}

	rows := make([]UserModel, 0)
	if err := q.Order("login ASC").Limit(domain.PageSize).Offset(page * domain.PageSize).Find(&rows).Error; err != nil {
		return domain.Page[domain.User]{}, err
	}

	content := make([]domain.User, 0, len(rows))
	for _, m := range rows {
		content = append(content, toUser(m))
	}
	return pageOf(content, page, total), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return domain.User{}, translateErr(err)
	}
	return toUser(m), nil
}

func (r *UserRepository) GetByLogin(ctx context.Context, login string) (domain.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).First(&m, "login = ?", login).Error; err != nil {
		return domain.User{}, translateErr(err)
	}
	return toUser(m), nil
}

// Create stores the already-hashed password; plaintext never reaches this
// layer.
func (r *UserRepository) Create(ctx context.Context, command domain.UserCommand, passwordHash string) (domain.User, error) {
	m := UserModel{
		ID:        idgen.NewID(),
		Login:     command.Login,
		Password:  passwordHash,
		FirstName: command.FirstName,
		LastName:  command.LastName,
		Email:     command.Email,
		Language:  command.Language,
		Timezone:  command.Timezone,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.User{}, err
	}
	return r.GetByID(ctx, m.ID)
}

// Update overwrites every column except the password hash, which only
// UpdatePassword touches.
func (r *UserRepository) Update(ctx context.Context, id string, command domain.UserCommand) error {
	return r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", id).Updates(map[string]any{
		"login":      command.Login,
		"first_name": command.FirstName,
		"last_name":  command.LastName,
		"email":      command.Email,
		"language":   command.Language,
		"timezone":   command.Timezone,
	}).Error
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", id).Update("password", passwordHash).Error
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&UserModel{}, "id = ?", id).Error
}

func toUser(m UserModel) domain.User {
	return domain.User{
		ID:           m.ID,
		Login:        m.Login,
		PasswordHash: m.Password,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		Language:     m.Language,
		Timezone:     m.Timezone,
	}
}
