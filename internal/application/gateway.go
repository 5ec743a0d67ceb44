package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/databridge-io/databridge/internal/domain"
)

// Scan mode schedules use six fields, seconds first ("0 0 * * * *").
var cronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// GatewayService validates and orchestrates configuration mutations across
// the scan-mode, reference-entity and connector repositories.
type GatewayService struct {
	scanModes       domain.ScanModeRepository
	proxies         domain.ProxyRepository
	ipFilters       domain.IPFilterRepository
	externalSources domain.ExternalSourceRepository
	souths          domain.SouthConnectorRepository
	norths          domain.NorthConnectorRepository
	items           domain.SouthItemRepository
}

func NewGatewayService(
	scanModes domain.ScanModeRepository,
	proxies domain.ProxyRepository,
	ipFilters domain.IPFilterRepository,
	externalSources domain.ExternalSourceRepository,
	souths domain.SouthConnectorRepository,
	norths domain.NorthConnectorRepository,
	items domain.SouthItemRepository,
) *GatewayService {
	return &GatewayService{
		scanModes:       scanModes,
		proxies:         proxies,
		ipFilters:       ipFilters,
		externalSources: externalSources,
		souths:          souths,
		norths:          norths,
		items:           items,
	}
}

func (s *GatewayService) ListScanModes(ctx context.Context) ([]domain.ScanMode, error) {
	return s.scanModes.GetAll(ctx)
}

func (s *GatewayService) CreateScanMode(ctx context.Context, command domain.ScanModeCommand) (domain.ScanMode, error) {
	if err := validateScanMode(command); err != nil {
		return domain.ScanMode{}, err
	}
	return s.scanModes.Create(ctx, command)
}

func (s *GatewayService) UpdateScanMode(ctx context.Context, id string, command domain.ScanModeCommand) error {
	if err := validateScanMode(command); err != nil {
		return err
	}
	if _, err := s.scanModes.GetByID(ctx, id); err != nil {
		return err
	}
	return s.scanModes.Update(ctx, id, command)
}

func (s *GatewayService) DeleteScanMode(ctx context.Context, id string) error {
	return s.scanModes.Delete(ctx, id)
}

func validateScanMode(command domain.ScanModeCommand) error {
	if strings.TrimSpace(command.Name) == "" {
		return errors.New("name is required")
	}
	if _, err := cronParser.Parse(command.Cron); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", command.Cron, err)
	}
	return nil
}

func (s *GatewayService) CreateProxy(ctx context.Context, command domain.ProxyCommand) (domain.Proxy, error) {
	if strings.TrimSpace(command.Name) == "" || strings.TrimSpace(command.Address) == "" {
		return domain.Proxy{}, errors.New("name and address are required")
	}
	return s.proxies.Create(ctx, command)
}

func (s *GatewayService) CreateIPFilter(ctx context.Context, command domain.IPFilterCommand) (domain.IPFilter, error) {
	if strings.TrimSpace(command.Address) == "" {
		return domain.IPFilter{}, errors.New("address is required")
	}
	return s.ipFilters.Create(ctx, command)
}

func (s *GatewayService) CreateExternalSource(ctx context.Context, command domain.ExternalSourceCommand) (domain.ExternalSource, error) {
	if strings.TrimSpace(command.Reference) == "" {
		return domain.ExternalSource{}, errors.New("reference is required")
	}
	return s.externalSources.Create(ctx, command)
}

func (s *GatewayService) ListSouthConnectors(ctx context.Context) ([]domain.SouthConnector, error) {
	return s.souths.GetAll(ctx)
}

func (s *GatewayService) CreateSouthConnector(ctx context.Context, command domain.SouthConnectorCommand) (domain.SouthConnector, error) {
	if err := validateConnector(command.Name, command.Type, command.Settings); err != nil {
		return domain.SouthConnector{}, err
	}
	return s.souths.Create(ctx, command)
}

func (s *GatewayService) UpdateSouthConnector(ctx context.Context, id string, command domain.SouthConnectorCommand) error {
	if err := validateConnector(command.Name, command.Type, command.Settings); err != nil {
		return err
	}
	if _, err := s.souths.GetByID(ctx, id); err != nil {
		return err
	}
	return s.souths.Update(ctx, id, command)
}

// DeleteSouthConnector removes the connector and everything hanging off it.
func (s *GatewayService) DeleteSouthConnector(ctx context.Context, id string) error {
	if _, err := s.souths.GetByID(ctx, id); err != nil {
		return err
	}
	return s.souths.Delete(ctx, id)
}

func (s *GatewayService) ListNorthConnectors(ctx context.Context) ([]domain.NorthConnector, error) {
	return s.norths.GetAll(ctx)
}

func (s *GatewayService) CreateNorthConnector(ctx context.Context, command domain.NorthConnectorCommand) (domain.NorthConnector, error) {
	if err := validateConnector(command.Name, command.Type, command.Settings); err != nil {
		return domain.NorthConnector{}, err
	}
	return s.norths.Create(ctx, command)
}

func (s *GatewayService) CreateSouthItem(ctx context.Context, southID string, command domain.SouthItemCommand) (domain.SouthItem, error) {
	if strings.TrimSpace(command.Name) == "" {
		return domain.SouthItem{}, errors.New("name is required")
	}
	if len(command.Settings) > 0 && !json.Valid(command.Settings) {
		return domain.SouthItem{}, errors.New("settings must be valid JSON")
	}
	if _, err := s.souths.GetByID(ctx, southID); err != nil {
		return domain.SouthItem{}, fmt.Errorf("south connector %s: %w", southID, err)
	}
	if _, err := s.scanModes.GetByID(ctx, command.ScanModeID); err != nil {
		return domain.SouthItem{}, fmt.Errorf("scan mode %s: %w", command.ScanModeID, err)
	}
	return s.items.Create(ctx, southID, command)
}

func (s *GatewayService) SearchSouthItems(ctx context.Context, southID, name string, page int) (domain.Page[domain.SouthItem], error) {
	if page < 0 {
		page = 0
	}
	return s.items.Search(ctx, southID, name, page)
}

func validateConnector(name, connectorType string, settings json.RawMessage) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(connectorType) == "" {
		return errors.New("name and type are required")
	}
	if len(settings) > 0 && !json.Valid(settings) {
		return errors.New("settings must be valid JSON")
	}
	return nil
}
