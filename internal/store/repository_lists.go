package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ltemarine/shiplog/internal/logger"
	"github.com/ltemarine/shiplog/models"
)

const (
	kindVessels = "vessels"
	kindUsers   = "users"
	kindTags    = "tags"
)

// The fleet the app ships with. A fresh cache gets these so the timesheet
// is usable before the first successful fetch from the base.
var (
	seedVessels = []string{"Aegir", "Afina", "Barla", "Dian Dian", "Ilker Deniz", "Nimba-1", "Nimba-2", "Nimba-3", "Nimba-4"}

	seedUsers = []models.User{
		{Name: "Sergey", Email: "", Role: models.RoleAdmin},
	}

	seedTags = []models.Tag{
		{Name: "Cargo Ops", Color: "#4299e1"},
		{Name: "Waiting", Color: "#ed8936"},
		{Name: "Transit", Color: "#48bb78"},
		{Name: "Maintenance", Color: "#a0aec0"},
		{Name: "Bunkering", Color: "#9f7aea"},
		{Name: "Anchored", Color: "#ed64a6"},
		{Name: "Weather Delay", Color: "#f56565"},
		{Name: "Port Stay", Color: "#ecc94b"},
		{Name: "Other", Color: "#718096"},
	}
)

// listItem is the row shape shared by all three reference lists.
type listItem struct {
	name     string
	email    string
	role     string
	color    string
	recordID string
	position int
}

// listRepository is the SQLite-backed implementation of [ListStore].
type listRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewListRepository(db *DB, logger *logger.Logger) ListStore {
	logger.Debug().Msg("creating reference list repository")
	return &listRepository{
		db:     db,
		logger: logger,
	}
}

func (r *listRepository) items(ctx context.Context, kind string) ([]listItem, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getListItems, kind)
	if err != nil {
		log.Err(err).Str("func", "*listRepository.items").Str("kind", kind).Msg("error: query failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	var items []listItem
	for rows.Next() {
		var item listItem
		if err = rows.Scan(&item.name, &item.email, &item.role, &item.color, &item.recordID, &item.position); err != nil {
			log.Err(err).Str("func", "*listRepository.items").Str("kind", kind).Msg("error: scanning error")
			return nil, err
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return items, nil
}

// replace rewrites a whole list inside one transaction. Position is the
// slice index, so callers control ordering by ordering the slice.
func (r *listRepository) replace(ctx context.Context, kind string, items []listItem) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*listRepository.replace").Str("kind", kind).Msg("error: begin tx failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, deleteListItems, kind); err != nil {
		log.Err(err).Str("func", "*listRepository.replace").Str("kind", kind).Msg("error: clearing list failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	for position, item := range items {
		_, err = tx.ExecContext(ctx, insertListItem,
			kind, item.name, item.email, item.role, item.color, item.recordID, position)
		if err != nil {
			log.Err(err).Str("func", "*listRepository.replace").Str("kind", kind).Str("name", item.name).Msg("error: insert failed")
			return fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return tx.Commit()
}

func (r *listRepository) Vessels(ctx context.Context) ([]models.Vessel, error) {
	items, err := r.items(ctx, kindVessels)
	if err != nil {
		return nil, err
	}

	vessels := make([]models.Vessel, 0, len(items))
	for _, item := range items {
		vessels = append(vessels, models.Vessel{Name: item.name, RecordID: item.recordID, Position: item.position})
	}
	return vessels, nil
}

func (r *listRepository) ReplaceVessels(ctx context.Context, vessels []models.Vessel) error {
	items := make([]listItem, 0, len(vessels))
	for _, vessel := range vessels {
		items = append(items, listItem{name: vessel.Name, recordID: vessel.RecordID})
	}
	return r.replace(ctx, kindVessels, items)
}

func (r *listRepository) Users(ctx context.Context) ([]models.User, error) {
	items, err := r.items(ctx, kindUsers)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(items))
	for _, item := range items {
		users = append(users, models.User{Name: item.name, Email: item.email, Role: item.role, ID: item.recordID})
	}
	return users, nil
}

func (r *listRepository) ReplaceUsers(ctx context.Context, users []models.User) error {
	items := make([]listItem, 0, len(users))
	for _, user := range users {
		items = append(items, listItem{name: user.Name, email: user.Email, role: user.Role, recordID: user.ID})
	}
	return r.replace(ctx, kindUsers, items)
}

func (r *listRepository) Tags(ctx context.Context) ([]models.Tag, error) {
	items, err := r.items(ctx, kindTags)
	if err != nil {
		return nil, err
	}

	tags := make([]models.Tag, 0, len(items))
	for _, item := range items {
		tags = append(tags, models.Tag{Name: item.name, Color: item.color, RecordID: item.recordID, Position: item.position})
	}
	return tags, nil
}

func (r *listRepository) ReplaceTags(ctx context.Context, tags []models.Tag) error {
	items := make([]listItem, 0, len(tags))
	for _, tag := range tags {
		items = append(items, listItem{name: tag.Name, color: tag.Color, recordID: tag.RecordID})
	}
	return r.replace(ctx, kindTags, items)
}

// Seed fills any empty list with its defaults. Non-empty lists are left
// alone so a seeded default never overwrites fetched or edited data.
func (r *listRepository) Seed(ctx context.Context) error {
	empty, err := r.listEmpty(ctx, kindVessels)
	if err != nil {
		return err
	}
	if empty {
		vessels := make([]models.Vessel, 0, len(seedVessels))
		for _, name := range seedVessels {
			vessels = append(vessels, models.Vessel{Name: name})
		}
		if err = r.ReplaceVessels(ctx, vessels); err != nil {
			return err
		}
	}

	empty, err = r.listEmpty(ctx, kindUsers)
	if err != nil {
		return err
	}
	if empty {
		if err = r.ReplaceUsers(ctx, seedUsers); err != nil {
			return err
		}
	}

	empty, err = r.listEmpty(ctx, kindTags)
	if err != nil {
		return err
	}
	if empty {
		if err = r.ReplaceTags(ctx, seedTags); err != nil {
			return err
		}
	}

	return nil
}

func (r *listRepository) listEmpty(ctx context.Context, kind string) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, countListItems, kind).Scan(&count); err != nil {
		if err == sql.ErrNoRows {
			return true, nil
		}
		return false, fmt.Errorf("unexpected DB error: %w", err)
	}
	return count == 0, nil
}
