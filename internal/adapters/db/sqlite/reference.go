package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/databridge-io/databridge/internal/domain"
	"github.com/databridge-io/databridge/internal/idgen"
)

// ProxyRepository, IPFilterRepository and ExternalSourceRepository follow the
// same simple reference-entity pattern: full-table list, lookup by id, create
// with a generated id, full-row update, unconditional delete.

type ProxyRepository struct {
	db *gorm.DB
}

func NewProxyRepository(db *gorm.DB) *ProxyRepository {
	return &ProxyRepository{db: db}
}

func (r *ProxyRepository) GetAll(ctx context.Context) ([]domain.Proxy, error) {
	rows := make([]ProxyModel, 0)
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.Proxy, 0, len(rows))
	for _, m := range rows {
		result = append(result, toProxy(m))
	}
	return result, nil
}

func (r *ProxyRepository) GetByID(ctx context.Context, id string) (domain.Proxy, error) {
	var m ProxyModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return domain.Proxy{}, translateErr(err)
	}
	return toProxy(m), nil
}

func (r *ProxyRepository) Create(ctx context.Context, command domain.ProxyCommand) (domain.Proxy, error) {
	m := ProxyModel{
		ID:          idgen.NewID(),
		Name:        command.Name,
		Description: command.Description,
		Address:     command.Address,
		Username:    command.Username,
		Password:    command.Password,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.Proxy{}, err
	}
	return r.GetByID(ctx, m.ID)
}

func (r *ProxyRepository) Update(ctx context.Context, id string, command domain.ProxyCommand) error {
	return r.db.WithContext(ctx).Model(&ProxyModel{}).Where("id = ?", id).Updates(map[string]any{
		"name":        command.Name,
		"description": command.Description,
		"address":     command.Address,
		"username":    command.Username,
		"password":    command.Password,
	}).Error
}

func (r *ProxyRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&ProxyModel{}, "id = ?", id).Error
}

func toProxy(m ProxyModel) domain.Proxy {
	return domain.Proxy{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Address:     m.Address,
		Username:    m.Username,
		Password:    m.Password,
	}
}

type IPFilterRepository struct {
	db *gorm.DB
}

func NewIPFilterRepository(db *gorm.DB) *IPFilterRepository {
	return &IPFilterRepository{db: db}
}

func (r *IPFilterRepository) GetAll(ctx context.Context) ([]domain.IPFilter, error) {
	rows := make([]IPFilterModel, 0)
	if err := r.db.WithContext(ctx).Order("address ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.IPFilter, 0, len(rows))
	for _, m := range rows {
		result = append(result, domain.IPFilter{ID: m.ID, Address: m.Address, Description: m.Description})
	}
	return result, nil
}

func (r *IPFilterRepository) GetByID(ctx context.Context, id string) (domain.IPFilter, error) {
	var m IPFilterModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return domain.IPFilter{}, translateErr(err)
	}
	return domain.IPFilter{ID: m.ID, Address: m.Address, Description: m.Description}, nil
}

func (r *IPFilterRepository) Create(ctx context.Context, command domain.IPFilterCommand) (domain.IPFilter, error) {
	m := IPFilterModel{ID: idgen.NewID(), Address: command.Address, Description: command.Description}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.IPFilter{}, err
	}
	return r.GetByID(ctx, m.ID)
}

func (r *IPFilterRepository) Update(ctx context.Context, id string, command domain.IPFilterCommand) error {
	return r.db.WithContext(ctx).Model(&IPFilterModel{}).Where("id = ?", id).Updates(map[string]any{
		"address":     command.Address,
		"description": command.Description,
	}).Error
}

func (r *IPFilterRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&IPFilterModel{}, "id = ?", id).Error
}

type ExternalSourceRepository struct {
	db *gorm.DB
}

func NewExternalSourceRepository(db *gorm.DB) *ExternalSourceRepository {
	return &ExternalSourceRepository{db: db}
}

func (r *ExternalSourceRepository) GetAll(ctx context.Context) ([]domain.ExternalSource, error) {
	rows := make([]ExternalSourceModel, 0)
	if err := r.db.WithContext(ctx).Order("reference ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.ExternalSource, 0, len(rows))
	for _, m := range rows {
		result = append(result, domain.ExternalSource{ID: m.ID, Reference: m.Reference, Description: m.Description})
	}
	return result, nil
}

func (r *ExternalSourceRepository) GetByID(ctx context.Context, id string) (domain.ExternalSource, error) {
	var m ExternalSourceModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return domain.ExternalSource{}, translateErr(err)
	}
	return domain.ExternalSource{ID: m.ID, Reference: m.Reference, Description: m.Description}, nil
}

func (r *ExternalSourceRepository) Create(ctx context.Context, command domain.ExternalSourceCommand) (domain.ExternalSource, error) {
	m := ExternalSourceModel{ID: idgen.NewID(), Reference: command.Reference, Description: command.Description}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.ExternalSource{}, err
	}
	return r.GetByID(ctx, m.ID)
}

func (r *ExternalSourceRepository) Update(ctx context.Context, id string, command domain.ExternalSourceCommand) error {
	return r.db.WithContext(ctx).Model(&ExternalSourceModel{}).Where("id = ?", id).Updates(map[string]any{
		"reference":   command.Reference,
		"description": command.Description,
	}).Error
}

func (r *ExternalSourceRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&ExternalSourceModel{}, "id = ?", id).Error
}
