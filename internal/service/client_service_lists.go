package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ltemarine/shiplog/internal/logger"
	"github.com/ltemarine/shiplog/internal/store"
	"github.com/ltemarine/shiplog/models"
)

var (
	ErrEmptyName     = fmt.Errorf("name must not be empty")
	ErrDuplicateName = fmt.Errorf("name already exists")
	ErrNameNotFound  = fmt.Errorf("name not found")
	ErrBadMove       = fmt.Errorf("move indexes out of range")
)

// clientListService keeps the reference lists in the local cache and mirrors
// edits to the remote base best-effort. A failed mirror is logged, never
// surfaced: the lists must stay editable offshore.
type clientListService struct {
	lists  store.ListStore
	remote RemoteReferences
	logger *logger.Logger
}

func NewClientListService(lists store.ListStore, remote RemoteReferences, logger *logger.Logger) ClientListService {
	return &clientListService{lists: lists, remote: remote, logger: logger}
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// moveItem relocates the element at fromIndex so it lands at toIndex, the way
// a list splice does: remove first, then insert into the shortened list.
func moveItem[T any](items []T, fromIndex, toIndex int) ([]T, error) {
	if fromIndex < 0 || fromIndex >= len(items) || toIndex < 0 || toIndex >= len(items) {
		return nil, ErrBadMove
	}

	item := items[fromIndex]
	items = append(items[:fromIndex], items[fromIndex+1:]...)

	items = append(items, item)
	copy(items[toIndex+1:], items[toIndex:])
	items[toIndex] = item

	return items, nil
}

// --- Vessels ---

func (s *clientListService) Vessels(ctx context.Context) ([]models.Vessel, error) {
	return s.lists.Vessels(ctx)
}

func (s *clientListService) AddVessel(ctx context.Context, name string) error {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	vessels, err := s.lists.Vessels(ctx)
	if err != nil {
		return err
	}
	for _, vessel := range vessels {
		if sameName(vessel.Name, name) {
			return ErrDuplicateName
		}
	}

	added := models.Vessel{Name: name}
	if s.remote != nil {
		recordID, remoteErr := s.remote.CreateVessel(ctx, name)
		if remoteErr != nil {
			log.Warn().Err(remoteErr).Str("vessel", name).Msg("mirroring vessel to base failed")
		} else {
			added.RecordID = recordID
		}
	}

	return s.lists.ReplaceVessels(ctx, append(vessels, added))
}

func (s *clientListService) RenameVessel(ctx context.Context, oldName, newName string) error {
	log := logger.FromContext(ctx)

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrEmptyName
	}

	vessels, err := s.lists.Vessels(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i, vessel := range vessels {
		if vessel.Name == oldName {
			idx = i
			continue
		}
		if sameName(vessel.Name, newName) {
			return ErrDuplicateName
		}
	}
	if idx == -1 {
		return ErrNameNotFound
	}

	vessels[idx].Name = newName
	if s.remote != nil && vessels[idx].RecordID != "" {
		if remoteErr := s.remote.RenameVessel(ctx, vessels[idx].RecordID, newName); remoteErr != nil {
			log.Warn().Err(remoteErr).Str("vessel", newName).Msg("mirroring vessel rename to base failed")
		}
	}

	return s.lists.ReplaceVessels(ctx, vessels)
}

func (s *clientListService) RemoveVessel(ctx context.Context, name string) error {
	log := logger.FromContext(ctx)

	vessels, err := s.lists.Vessels(ctx)
	if err != nil {
		return err
	}

	kept := vessels[:0:0]
	var removed *models.Vessel
	for i := range vessels {
		if vessels[i].Name == name {
			removed = &vessels[i]
			continue
		}
		kept = append(kept, vessels[i])
	}
	if removed == nil {
		return ErrNameNotFound
	}

	if s.remote != nil && removed.RecordID != "" {
		if remoteErr := s.remote.DeleteVessel(ctx, removed.RecordID); remoteErr != nil {
			log.Warn().Err(remoteErr).Str("vessel", name).Msg("mirroring vessel removal to base failed")
		}
	}

	return s.lists.ReplaceVessels(ctx, kept)
}

func (s *clientListService) MoveVessel(ctx context.Context, fromIndex, toIndex int) error {
	vessels, err := s.lists.Vessels(ctx)
	if err != nil {
		return err
	}

	moved, err := moveItem(vessels, fromIndex, toIndex)
	if err != nil {
		return err
	}

	return s.lists.ReplaceVessels(ctx, moved)
}

// --- Users ---

func (s *clientListService) Users(ctx context.Context) ([]models.User, error) {
	return s.lists.Users(ctx)
}

func (s *clientListService) AddUser(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	user.Name = strings.TrimSpace(user.Name)
	user.Email = strings.TrimSpace(user.Email)
	if user.Name == "" {
		return ErrEmptyName
	}
	if user.Role == "" {
		user.Role = models.RoleVessel
	}

	users, err := s.lists.Users(ctx)
	if err != nil {
		return err
	}
	for _, existing := range users {
		if sameName(existing.Name, user.Name) {
			return ErrDuplicateName
		}
	}

	if s.remote != nil {
		recordID, remoteErr := s.remote.CreateUser(ctx, user)
		if remoteErr != nil {
			log.Warn().Err(remoteErr).Str("user", user.Name).Msg("mirroring user to base failed")
		} else {
			user.ID = recordID
		}
	}

	return s.lists.ReplaceUsers(ctx, append(users, user))
}

func (s *clientListService) UpdateUser(ctx context.Context, oldName string, user models.User) error {
	log := logger.FromContext(ctx)

	users, err := s.lists.Users(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i, existing := range users {
		if existing.Name == oldName {
			idx = i
			continue
		}
		if user.Name != "" && sameName(existing.Name, user.Name) {
			return ErrDuplicateName
		}
	}
	if idx == -1 {
		return ErrNameNotFound
	}

	if user.Name != "" {
		users[idx].Name = strings.TrimSpace(user.Name)
	}
	if user.Email != "" {
		users[idx].Email = strings.TrimSpace(user.Email)
	}
	if user.Role != "" {
		users[idx].Role = user.Role
	}

	if s.remote != nil && users[idx].ID != "" {
		if remoteErr := s.remote.UpdateUser(ctx, users[idx].ID, users[idx]); remoteErr != nil {
			log.Warn().Err(remoteErr).Str("user", users[idx].Name).Msg("mirroring user update to base failed")
		}
	}

	return s.lists.ReplaceUsers(ctx, users)
}

func (s *clientListService) RemoveUser(ctx context.Context, name string) error {
	log := logger.FromContext(ctx)

	users, err := s.lists.Users(ctx)
	if err != nil {
		return err
	}

	kept := users[:0:0]
	var removed *models.User
	for i := range users {
		if users[i].Name == name {
			removed = &users[i]
			continue
		}
		kept = append(kept, users[i])
	}
	if removed == nil {
		return ErrNameNotFound
	}

	if s.remote != nil && removed.ID != "" {
		if remoteErr := s.remote.DeleteUser(ctx, removed.ID); remoteErr != nil {
			log.Warn().Err(remoteErr).Str("user", name).Msg("mirroring user removal to base failed")
		}
	}

	return s.lists.ReplaceUsers(ctx, kept)
}

func (s *clientListService) MoveUser(ctx context.Context, fromIndex, toIndex int) error {
	users, err := s.lists.Users(ctx)
	if err != nil {
		return err
	}

	moved, err := moveItem(users, fromIndex, toIndex)
	if err != nil {
		return err
	}

	return s.lists.ReplaceUsers(ctx, moved)
}

// --- Tags ---

func (s *clientListService) Tags(ctx context.Context) ([]models.Tag, error) {
	return s.lists.Tags(ctx)
}

func (s *clientListService) AddTag(ctx context.Context, tag models.Tag) error {
	log := logger.FromContext(ctx)

	tag.Name = strings.TrimSpace(tag.Name)
	if tag.Name == "" {
		return ErrEmptyName
	}
	if tag.Color == "" {
		tag.Color = models.DefaultTagColor
	}

	tags, err := s.lists.Tags(ctx)
	if err != nil {
		return err
	}
	for _, existing := range tags {
		if sameName(existing.Name, tag.Name) {
			return ErrDuplicateName
		}
	}

	if s.remote != nil {
		recordID, remoteErr := s.remote.CreateTag(ctx, tag.Name, tag.Color)
		if remoteErr != nil {
			log.Warn().Err(remoteErr).Str("tag", tag.Name).Msg("mirroring tag to base failed")
		} else {
			tag.RecordID = recordID
		}
	}

	return s.lists.ReplaceTags(ctx, append(tags, tag))
}

func (s *clientListService) UpdateTag(ctx context.Context, oldName string, tag models.Tag) error {
	log := logger.FromContext(ctx)

	tags, err := s.lists.Tags(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i, existing := range tags {
		if existing.Name == oldName {
			idx = i
			continue
		}
		if tag.Name != "" && sameName(existing.Name, tag.Name) {
			return ErrDuplicateName
		}
	}
	if idx == -1 {
		return ErrNameNotFound
	}

	if tag.Name != "" {
		tags[idx].Name = strings.TrimSpace(tag.Name)
	}
	if tag.Color != "" {
		tags[idx].Color = tag.Color
	}

	if s.remote != nil && tags[idx].RecordID != "" {
		if remoteErr := s.remote.UpdateTag(ctx, tags[idx].RecordID, tags[idx].Name, tags[idx].Color); remoteErr != nil {
			log.Warn().Err(remoteErr).Str("tag", tags[idx].Name).Msg("mirroring tag update to base failed")
		}
	}

	return s.lists.ReplaceTags(ctx, tags)
}

func (s *clientListService) RemoveTag(ctx context.Context, name string) error {
	log := logger.FromContext(ctx)

	tags, err := s.lists.Tags(ctx)
	if err != nil {
		return err
	}

	kept := tags[:0:0]
	var removed *models.Tag
	for i := range tags {
		if tags[i].Name == name {
			removed = &tags[i]
			continue
		}
		kept = append(kept, tags[i])
	}
	if removed == nil {
		return ErrNameNotFound
	}

	if s.remote != nil && removed.RecordID != "" {
		if remoteErr := s.remote.DeleteTag(ctx, removed.RecordID); remoteErr != nil {
			log.Warn().Err(remoteErr).Str("tag", name).Msg("mirroring tag removal to base failed")
		}
	}

	return s.lists.ReplaceTags(ctx, kept)
}

func (s *clientListService) MoveTag(ctx context.Context, fromIndex, toIndex int) error {
	tags, err := s.lists.Tags(ctx)
	if err != nil {
		return err
	}

	moved, err := moveItem(tags, fromIndex, toIndex)
	if err != nil {
		return err
	}

	return s.lists.ReplaceTags(ctx, moved)
}
