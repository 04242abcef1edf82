// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"quill/internal/models"
	"quill/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// groupTopics are the built-in communities. Every slug must satisfy
// validation.ValidateGroupSlug so seeded data matches what admin tooling
// could create.
var groupTopics = []struct {
	Title       string
	Slug        string
	Description string
}{
	{"Technology", "technology", "Gadgets, software and everything in between"},
	{"Books", "books", "What we are reading this month"},
	{"Travel", "travel", "Trip reports and destination guides"},
	{"Cooking", "cooking", "Recipes, techniques and kitchen disasters"},
	{"Music", "music", "New releases, old favorites, live shows"},
	{"Photography", "photography", "Gear talk and photo critique"},
	{"Gaming", "gaming", "Across every platform"},
	{"Science", "science", "Discoveries and discussions"},
	{"Fitness", "fitness", "Training logs and advice"},
	{"Cinema", "cinema", "Film reviews and recommendations"},
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	groups, err := createOrGetGroups(db)
	if err != nil {
		return fmt.Errorf("failed to create groups: %w", err)
	}
	log.Printf("✓ %d groups available", len(groups))

	posts, err := createPosts(db, users, groups, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	comments, err := createComments(db, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("✓ %d comments created", comments)

	follows, err := createFollows(db, users)
	if err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}
	log.Printf("✓ %d follow edges created", follows)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE comments, follows, posts, groups, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(db *gorm.DB, count int) ([]*models.User, error) {
	// One shared hash: bcrypt per user makes large seeds crawl.
	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123!demo"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		username := seedUsername(i)
		users = append(users, &models.User{
			Username: username,
			Email:    fmt.Sprintf("%s@example.com", username),
			Password: string(hashed),
			Bio:      gofakeit.Sentence(10),
		})
	}

	if err := db.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// seedUsername builds a username that passes validation.ValidateUsername and
// is unique within one seeding run.
func seedUsername(i int) string {
	base := strings.ToLower(gofakeit.Username())
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, base)
	base = strings.Trim(base, "-_")
	if len(base) < 3 {
		base = "user"
	}
	if len(base) > 24 {
		base = base[:24]
	}
	return fmt.Sprintf("%s-%d", base, i)
}

func createOrGetGroups(db *gorm.DB) ([]*models.Group, error) {
	groups := make([]*models.Group, 0, len(groupTopics))
	for _, topic := range groupTopics {
		if err := validation.ValidateGroupSlug(topic.Slug); err != nil {
			return nil, fmt.Errorf("built-in group slug %q: %w", topic.Slug, err)
		}

		group := &models.Group{
			Title:       topic.Title,
			Slug:        topic.Slug,
			Description: topic.Description,
		}
		err := db.Where("slug = ?", topic.Slug).FirstOrCreate(group).Error
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func createPosts(db *gorm.DB, users []*models.User, groups []*models.Group, count int) ([]*models.Post, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[r.Intn(len(users))]
		post := &models.Post{
			Text:   gofakeit.Paragraph(1, 3, 12, "\n"),
			UserID: author.ID,
		}

		// roughly two thirds of posts are filed under a group
		if r.Intn(3) != 0 {
			group := groups[r.Intn(len(groups))]
			post.GroupID = &group.ID
		}

		// realistic pub_date spread over the last 90 days
		daysBack := r.Intn(90)
		post.PubDate = time.Now().
			Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(r.Intn(24))*time.Hour)

		posts = append(posts, post)
	}

	if err := db.Create(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func createComments(db *gorm.DB, users []*models.User, posts []*models.Post) (int, error) {
	//nolint:gosec
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	var comments []*models.Comment
	for _, post := range posts {
		for i := 0; i < r.Intn(5); i++ {
			commenter := users[r.Intn(len(users))]
			comments = append(comments, &models.Comment{
				Text:   gofakeit.Sentence(r.Intn(15) + 3),
				UserID: commenter.ID,
				PostID: post.ID,
			})
		}
	}
	if len(comments) == 0 {
		return 0, nil
	}

	if err := db.Create(&comments).Error; err != nil {
		return 0, err
	}
	return len(comments), nil
}

// createFollows builds a random follow mesh. Self-follows and duplicate pairs
// are filtered here so inserts never trip the schema constraints.
func createFollows(db *gorm.DB, users []*models.User) (int, error) {
	//nolint:gosec
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	seen := make(map[[2]uint]bool)
	var follows []*models.Follow
	for _, user := range users {
		for i := 0; i < r.Intn(6); i++ {
			target := users[r.Intn(len(users))]
			if target.ID == user.ID {
				continue
			}
			pair := [2]uint{user.ID, target.ID}
			if seen[pair] {
				continue
			}
			seen[pair] = true
			follows = append(follows, &models.Follow{
				UserID:      user.ID,
				FollowingID: target.ID,
			})
		}
	}
	if len(follows) == 0 {
		return 0, nil
	}

	if err := db.Create(&follows).Error; err != nil {
		return 0, err
	}
	return len(follows), nil
}
