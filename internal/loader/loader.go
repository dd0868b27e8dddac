package loader

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/XavierBriggs/fortuna/services/shotclock-analytics/internal/nbateams"
	"github.com/XavierBriggs/fortuna/services/shotclock-analytics/internal/providers/nbastats"
	"github.com/XavierBriggs/fortuna/services/shotclock-analytics/pkg/models"
)

// teamColumns are the columns the team point-shot table must carry.
// Names are case-sensitive and match the endpoint exactly
var teamColumns = []string{
	"TEAM_ID",
	"TEAM_NAME",
	"TEAM_ABBREVIATION",
	"GP",
	"FGM",
	"FGA",
	"FG2M",
	"FG2A",
	"FG3M",
	"FG3A",
}

// Config identifies the table to load. Season, season type, and team are
// deployment configuration, not request inputs
type Config struct {
	Season     string
	SeasonType string
	TeamID     int
}

// Cache memoizes complete snapshots between loads. Implementations must
// treat their own failures as misses; a cache error never fails a load
type Cache interface {
	Read(ctx context.Context, dataset models.DatasetKind, season string) (*models.Snapshot, error)
	Write(ctx context.Context, snap *models.Snapshot) error
}

// Service loads complete dataset snapshots from the stats endpoint,
// optionally memoizing them through a Cache
type Service struct {
	client *nbastats.Client
	cfg    Config
	cache  Cache // nil disables memoization
}

// NewService creates a loader service
func NewService(client *nbastats.Client, cfg Config, cache Cache) *Service {
	return &Service{
		client: client,
		cfg:    cfg,
		cache:  cache,
	}
}

// LoadTeamSnapshot fetches the full team table: one request per
// (category x shot-clock bucket) combination, keeping only the configured
// team's row. The load is all-or-nothing: any failed combination aborts it
// and no partial snapshot is produced. When force is false a cached
// snapshot is used if present
func (s *Service) LoadTeamSnapshot(ctx context.Context, force bool) (*models.Snapshot, error) {
	if !force && s.cache != nil {
		if snap, err := s.cache.Read(ctx, models.DatasetTeam, s.cfg.Season); err != nil {
			log.Printf("[loader] cache read failed, falling back to fetch: %v", err)
		} else if snap != nil {
			log.Printf("[loader] serving team snapshot %s from cache", snap.ID)
			return snap, nil
		}
	}

	var rows []models.ShotRow

	for _, category := range models.Categories {
		for _, bucket := range models.ShotClockOrder {
			table, err := s.client.TeamShotClock(ctx, nbastats.Query{
				Season:         s.cfg.Season,
				SeasonType:     s.cfg.SeasonType,
				TeamID:         s.cfg.TeamID,
				GeneralRange:   category,
				ShotClockRange: bucket,
			})
			if err != nil {
				return nil, fmt.Errorf("fetching %s / %s: %w", category, bucket, err)
			}

			if err := table.Require(teamColumns...); err != nil {
				return nil, err
			}

			for i := range table.Rows {
				if table.Int(i, "TEAM_ID") != s.cfg.TeamID {
					continue
				}
				abbr := table.String(i, "TEAM_ABBREVIATION")
				if abbr == "" {
					abbr = nbateams.Abbreviation(table.String(i, "TEAM_NAME"))
				}
				row := models.ShotRow{
					TeamID:      table.Int(i, "TEAM_ID"),
					TeamName:    table.String(i, "TEAM_NAME"),
					TeamAbbr:    abbr,
					Range:       bucket,
					Category:    category,
					GamesPlayed: table.Int(i, "GP"),
					FGM:         table.Float(i, "FGM"),
					FGA:         table.Float(i, "FGA"),
					FG2M:        table.Float(i, "FG2M"),
					FG2A:        table.Float(i, "FG2A"),
					FG3M:        table.Float(i, "FG3M"),
					FG3A:        table.Float(i, "FG3A"),
				}
				if err := ValidateRow(row); err != nil {
					return nil, fmt.Errorf("row %s/%s: %w", category, bucket, err)
				}
				rows = append(rows, row)
			}
		}
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: endpoint returned no rows for team %d",
			models.ErrSourceUnavailable, s.cfg.TeamID)
	}

	snap := &models.Snapshot{
		ID:         uuid.NewString(),
		Dataset:    models.DatasetTeam,
		Season:     s.cfg.Season,
		SeasonType: s.cfg.SeasonType,
		LoadedAt:   time.Now().UTC(),
		Rows:       Derive(rows),
	}

	if s.cache != nil {
		if err := s.cache.Write(ctx, snap); err != nil {
			log.Printf("[loader] cache write failed: %v", err)
		}
	}

	return snap, nil
}

// LoadPlayerSnapshot builds a snapshot from a previously scraped player CSV
func (s *Service) LoadPlayerSnapshot(path string) (*models.Snapshot, error) {
	rows, err := ReadPlayerCSVFile(path)
	if err != nil {
		return nil, err
	}

	return &models.Snapshot{
		ID:         uuid.NewString(),
		Dataset:    models.DatasetPlayer,
		Season:     s.cfg.Season,
		SeasonType: s.cfg.SeasonType,
		LoadedAt:   time.Now().UTC(),
		Rows:       Derive(rows),
	}, nil
}
