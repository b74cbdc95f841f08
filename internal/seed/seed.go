// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"momentcanvas/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much data the seeder generates.
type Options struct {
	Users          int
	DiariesPerUser int
	// FollowChance is the probability a user follows any other given user.
	FollowChance float64
	// LikeChance is the probability a user likes any given public diary.
	LikeChance float64
	// SkipBcrypt stores plain passwords for faster local seeding.
	SkipBcrypt bool
}

// DefaultOptions is a medium-sized data set suitable for local development.
var DefaultOptions = Options{
	Users:          30,
	DiariesPerUser: 20,
	FollowChance:   0.15,
	LikeChance:     0.10,
}

// SeedPassword is the password every generated account gets.
const SeedPassword = "Seeded-Passw0rd!"

var visibilityMix = []models.Visibility{
	models.VisibilityPublic,
	models.VisibilityPublic,
	models.VisibilityFollowOnly,
	models.VisibilityPrivate,
}

var moodWords = []string{"gloomy", "calm", "fine", "bright", "glowing"}

// Seeder builds domain entities and persists them to the database.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
	// seq makes generated login ids and nicknames collision-free.
	seq int
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes every seeded row, children first.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"diary_likes", "follows", "diaries", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// sanitizeLoginID forces a generated username into the login id alphabet.
func sanitizeLoginID(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	id := b.String()
	if len(id) < 4 {
		id = id + "user"
	}
	if len(id) > 24 {
		id = id[:24]
	}
	return id
}

// CreateUser constructs and persists a sample account. Optional override
// functions may modify the generated user before saving.
func (s *Seeder) CreateUser(skipBcrypt bool, overrides ...func(*models.User)) (*models.User, error) {
	s.seq++
	suffix := 100 + s.seq
	birthday := gofakeit.DateRange(
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2008, 1, 1, 0, 0, 0, 0, time.UTC))

	nick := sanitizeLoginID(gofakeit.FirstName())
	if len(nick) > 10 {
		nick = nick[:10]
	}

	user := &models.User{
		LoginID:  fmt.Sprintf("%s%d", sanitizeLoginID(gofakeit.Username()), suffix),
		Nickname: fmt.Sprintf("%s.%d", nick, suffix),
		Birthday: &birthday,
		Persona:  gofakeit.Sentence(8),
		Status:   models.UserStatusActive,
		Role:     models.UserRoleUser,
		Provider: models.ProviderNone,
	}
	if s.rng.Intn(2) == 0 {
		user.Gender = models.GenderFemale
	} else {
		user.Gender = models.GenderMale
	}

	if skipBcrypt {
		user.Password = SeedPassword
	} else {
		hashed, _ := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
		user.Password = string(hashed)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateDiary persists a generated entry for the given author and date. The
// caller is responsible for keeping dates unique per author.
func (s *Seeder) CreateDiary(author *models.User, date time.Time, overrides ...func(*models.Diary)) (*models.Diary, error) {
	mood := 1 + s.rng.Intn(5)
	diary := &models.Diary{
		AuthorID:   author.ID,
		Title:      fmt.Sprintf("A %s %s", moodWords[mood-1], gofakeit.NounConcrete()),
		Content:    gofakeit.Paragraph(1, 3, 6, "\n"),
		Mood:       mood,
		Visibility: visibilityMix[s.rng.Intn(len(visibilityMix))],
		TargetDate: time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		IsDeleted:  models.No,
	}

	for _, override := range overrides {
		override(diary)
	}

	if err := s.db.Create(diary).Error; err != nil {
		return nil, err
	}
	return diary, nil
}

// CreateFollow persists a directed follow edge.
func (s *Seeder) CreateFollow(follower, following *models.User) error {
	return s.db.Create(&models.Follow{
		FollowerID:  follower.ID,
		FollowingID: following.ID,
	}).Error
}

// CreateLike persists a like row and bumps the denormalized counter.
func (s *Seeder) CreateLike(user *models.User, diary *models.Diary) error {
	if err := s.db.Create(&models.DiaryLike{DiaryID: diary.ID, UserID: user.ID}).Error; err != nil {
		return err
	}
	return s.db.Model(&models.Diary{}).Where("id = ?", diary.ID).
		UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
}

// Run populates the database with a connected social graph: users, follow
// edges, one diary per user per day walking back from today, and likes on
// public entries.
func (s *Seeder) Run(opts Options) error {
	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := s.CreateUser(opts.SkipBcrypt)
		if err != nil {
			return fmt.Errorf("creating user %d: %w", i, err)
		}
		users = append(users, user)
	}

	for _, follower := range users {
		for _, following := range users {
			if follower.ID == following.ID || s.rng.Float64() >= opts.FollowChance {
				continue
			}
			if err := s.CreateFollow(follower, following); err != nil {
				return fmt.Errorf("creating follow: %w", err)
			}
		}
	}

	var publicDiaries []*models.Diary
	today := time.Now().UTC()
	for _, author := range users {
		// Walking back one day at a time keeps dates unique per author.
		for day := 0; day < opts.DiariesPerUser; day++ {
			diary, err := s.CreateDiary(author, today.AddDate(0, 0, -day))
			if err != nil {
				return fmt.Errorf("creating diary: %w", err)
			}
			if diary.Visibility == models.VisibilityPublic {
				publicDiaries = append(publicDiaries, diary)
			}
		}
	}

	for _, diary := range publicDiaries {
		for _, user := range users {
			if user.ID == diary.AuthorID || s.rng.Float64() >= opts.LikeChance {
				continue
			}
			if err := s.CreateLike(user, diary); err != nil {
				return fmt.Errorf("creating like: %w", err)
			}
		}
	}

	return nil
}
