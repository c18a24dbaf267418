package services

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/AmanSingh2427/Whatapp/internal/database"
	"github.com/AmanSingh2427/Whatapp/internal/models"
	"github.com/AmanSingh2427/Whatapp/pkg/errors"
	"github.com/AmanSingh2427/Whatapp/pkg/logger"
	"github.com/AmanSingh2427/Whatapp/pkg/utils"
)

const groupsCacheKey = "groups:all"

// GroupMemberView is a membership row joined with the member's name.
type GroupMemberView struct {
	UserID   string `gorm:"column:user_id" json:"user_id"`
	Username string `gorm:"column:username" json:"username"`
}

// CreateGroup writes the group row and all membership rows in one
// transaction: either the whole group becomes visible or nothing does.
// The admin is always a member. Duplicate names are surfaced as a
// creation failure, never retried.
func CreateGroup(name, adminID string, memberIDs []string) (*models.Group, *errors.AppError) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.BadRequest("Group name is required")
	}

	seen := make(map[string]struct{}, len(memberIDs)+1)
	members := make([]string, 0, len(memberIDs)+1)
	for _, id := range append([]string{adminID}, memberIDs...) {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		members = append(members, id)
	}

	if len(members) < 2 {
		return nil, errors.BadRequest("A group needs at least two distinct members")
	}

	var known int64
	if err := database.DB.Model(&models.User{}).Where("id IN ?", members).Count(&known).Error; err != nil {
		return nil, errors.Internal("Failed to create group")
	}
	if known != int64(len(members)) {
		return nil, errors.BadRequest("One or more members do not exist")
	}

	group := models.Group{
		ID:        utils.GenerateID(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		for _, uid := range members {
			if err := tx.Create(&models.GroupMember{GroupID: group.ID, UserID: uid}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Str("name", name).Msg("Group creation rolled back")
		return nil, errors.Internal("Failed to create group")
	}

	database.CacheInvalidate(groupsCacheKey)
	return &group, nil
}

// ListGroups returns every group, newest first, behind a short cache.
func ListGroups() ([]models.Group, *errors.AppError) {
	groups := []models.Group{}
	if err := database.CacheGet(groupsCacheKey, &groups); err == nil {
		return groups, nil
	}

	if err := database.DB.Order("created_at DESC").Find(&groups).Error; err != nil {
		return nil, errors.Internal("Failed to fetch groups")
	}

	database.CacheSet(groupsCacheKey, groups, time.Minute)
	return groups, nil
}

// GetGroup returns one group, or NotFound.
func GetGroup(groupID string) (*models.Group, *errors.AppError) {
	var group models.Group
	if err := database.DB.First(&group, "id = ?", groupID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("Group not found")
		}
		return nil, errors.Internal("Failed to fetch group")
	}
	return &group, nil
}

// Members returns a group's membership joined with usernames.
func Members(groupID string) ([]GroupMemberView, *errors.AppError) {
	members := []GroupMemberView{}
	err := database.DB.Table("group_members").
		Select("group_members.user_id, users.username").
		Joins("JOIN users ON users.id = group_members.user_id").
		Where("group_members.group_id = ?", groupID).
		Order("users.username ASC").
		Scan(&members).Error
	if err != nil {
		return nil, errors.Internal("Failed to fetch group members")
	}
	return members, nil
}

// GroupsForUser returns the groups the user belongs to.
func GroupsForUser(userID string) ([]models.Group, *errors.AppError) {
	groups := []models.Group{}
	err := database.DB.Table("groups").
		Select("groups.id, groups.name, groups.created_at").
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Order("groups.created_at DESC").
		Scan(&groups).Error
	if err != nil {
		return nil, errors.Internal("Failed to fetch user groups")
	}
	return groups, nil
}
