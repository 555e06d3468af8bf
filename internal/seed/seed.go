// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"plume/internal/models"

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

// Seeder populates the database with fake social data.
type Seeder struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Seeder{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Run populates users, posts, comments, follows and likes.
func (s *Seeder) Run(opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := s.createUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d test users created", len(users))

	posts, err := s.createPosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	follows, err := s.createFollows(users)
	if err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}
	log.Printf("%d follow edges created", follows)

	likes, comments, err := s.createEngagement(users, posts)
	if err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}
	log.Printf("%d likes and %d comments created", likes, comments)

	log.Println("Database seeding completed successfully!")
	return nil
}

// ClearAll truncates every seeded table.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE notifications, comments, likes, follows, posts, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

func (s *Seeder) createUsers(n int) ([]*models.User, error) {
	// One shared hash; bcrypt per user would make big seeds crawl.
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		user := &models.User{
			Username: strings.ToLower(fmt.Sprintf("%s_%s%d", first, last, s.r.Intn(1000))),
			Email:    strings.ToLower(fmt.Sprintf("%s.%s%d@%s", first, last, s.r.Intn(1000), gofakeit.DomainName())),
			FullName: first + " " + last,
			Password: string(hashed),
			Bio:      gofakeit.Sentence(8),
			Link:     gofakeit.URL(),
		}
		if s.r.Intn(2) == 0 {
			user.ProfileImg = fmt.Sprintf("https://picsum.photos/seed/%s/400/400", gofakeit.UUID())
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) createPosts(users []*models.User, n int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.r.Intn(len(users))]
		post := &models.Post{
			UserID:    author.ID,
			Text:      gofakeit.Paragraph(1, 2, 8, " "),
			CreatedAt: time.Now().Add(-time.Duration(s.r.Intn(90*24)) * time.Hour),
		}
		if s.r.Intn(3) == 0 {
			post.Img = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
		}
		if err := s.db.Create(post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (s *Seeder) createFollows(users []*models.User) (int, error) {
	created := 0
	for _, u := range users {
		for i := 0; i < s.r.Intn(6); i++ {
			target := users[s.r.Intn(len(users))]
			if target.ID == u.ID {
				continue
			}
			follow := &models.Follow{FollowerID: u.ID, FolloweeID: target.ID}
			if err := s.db.Where(follow).FirstOrCreate(follow).Error; err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

func (s *Seeder) createEngagement(users []*models.User, posts []*models.Post) (likes, comments int, err error) {
	for _, p := range posts {
		for i := 0; i < s.r.Intn(5); i++ {
			liker := users[s.r.Intn(len(users))]
			like := &models.Like{UserID: liker.ID, PostID: p.ID}
			if err := s.db.Where(like).FirstOrCreate(like).Error; err != nil {
				return likes, comments, err
			}
			likes++
		}
		for i := 0; i < s.r.Intn(3); i++ {
			commenter := users[s.r.Intn(len(users))]
			comment := &models.Comment{
				PostID: p.ID,
				UserID: commenter.ID,
				Text:   gofakeit.Sentence(10),
			}
			if err := s.db.Create(comment).Error; err != nil {
				return likes, comments, err
			}
			comments++
		}
	}
	return likes, comments, nil
}
