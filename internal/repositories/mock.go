package repositories

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/anonto42/pulseblog/internal/models"
	"gorm.io/gorm"
)

// MockStore simulates the relational store for handler tests. It backs every
// repository interface with maps and reproduces the storage-level behaviour
// the handlers rely on: feed ordering, the comment cascade on post delete,
// and the uniqueness/self-follow constraints of the follows table.
type MockStore struct {
	mu sync.Mutex

	nextID   uint
	Users    map[uint]*models.User
	Groups   map[uint]*models.Group
	Posts    map[uint]*models.Post
	Comments map[uint]*models.Comment
	Follows  map[uint]*models.Follow
}

// NewMock initializes an empty mock store
func NewMock() *MockStore {
	return &MockStore{
		Users:    make(map[uint]*models.User),
		Groups:   make(map[uint]*models.Group),
		Posts:    make(map[uint]*models.Post),
		Comments: make(map[uint]*models.Comment),
		Follows:  make(map[uint]*models.Follow),
	}
}

func (m *MockStore) id() uint {
	m.nextID++
	return m.nextID
}

// --- UserRepository ---

func (m *MockStore) CreateUser(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.Username == user.Username || u.Email == user.Email {
			return errors.New("mock: duplicate user")
		}
	}
	user.ID = m.id()
	user.Profile = models.Profile{ID: m.id(), UserID: user.ID}
	u := *user
	m.Users[user.ID] = &u
	return nil
}

func (m *MockStore) GetUserByID(id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	user := *u
	return &user, nil
}

func (m *MockStore) GetUserByUsername(username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.Username == username {
			user := *u
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockStore) GetUserByEmail(email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.Email == email {
			user := *u
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockStore) UpdateProfile(profile *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.Profile.ID == profile.ID || u.ID == profile.UserID {
			u.Profile = *profile
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// --- GroupRepository ---

func (m *MockStore) CreateGroup(group *models.Group) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.Groups {
		if g.Slug == group.Slug {
			return errors.New("mock: duplicate slug")
		}
	}
	group.ID = m.id()
	g := *group
	m.Groups[group.ID] = &g
	return nil
}

func (m *MockStore) GetGroupBySlug(slug string) (*models.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.Groups {
		if g.Slug == slug {
			group := *g
			return &group, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockStore) GetGroups() ([]models.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	groups := make([]models.Group, 0, len(m.Groups))
	for _, g := range m.Groups {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Title < groups[j].Title })
	return groups, nil
}

// --- PostRepository ---

func (m *MockStore) CreatePost(post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	post.ID = m.id()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	p := *post
	m.Posts[post.ID] = &p
	return nil
}

func (m *MockStore) GetPostByID(id uint) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	post := *p
	m.hydrate(&post)
	post.Comments = nil
	for _, c := range m.Comments {
		if c.PostID == id {
			comment := *c
			if a, ok := m.Users[comment.AuthorID]; ok {
				comment.Author = *a
			}
			post.Comments = append(post.Comments, comment)
		}
	}
	sort.Slice(post.Comments, func(i, j int) bool {
		ci, cj := post.Comments[i], post.Comments[j]
		if !ci.CreatedAt.Equal(cj.CreatedAt) {
			return ci.CreatedAt.After(cj.CreatedAt)
		}
		return ci.ID > cj.ID
	})
	return &post, nil
}

func (m *MockStore) UpdatePost(post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Posts[post.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	p := *post
	p.Comments = nil
	m.Posts[post.ID] = &p
	return nil
}

// DeletePost removes the post and, like the FK cascade, its comments
func (m *MockStore) DeletePost(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Posts, id)
	for cid, c := range m.Comments {
		if c.PostID == id {
			delete(m.Comments, cid)
		}
	}
	return nil
}

func (m *MockStore) hydrate(post *models.Post) {
	if a, ok := m.Users[post.AuthorID]; ok {
		post.Author = *a
	}
	if post.GroupID != nil {
		if g, ok := m.Groups[*post.GroupID]; ok {
			group := *g
			post.Group = &group
		}
	}
}

func (m *MockStore) selectPosts(match func(*models.Post) bool, limit, offset int) []models.Post {
	var posts []models.Post
	for _, p := range m.Posts {
		if match(p) {
			post := *p
			m.hydrate(&post)
			posts = append(posts, post)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		pi, pj := posts[i], posts[j]
		if !pi.CreatedAt.Equal(pj.CreatedAt) {
			return pi.CreatedAt.After(pj.CreatedAt)
		}
		return pi.ID > pj.ID
	})
	if offset >= len(posts) {
		return nil
	}
	posts = posts[offset:]
	if limit < len(posts) {
		posts = posts[:limit]
	}
	return posts
}

func (m *MockStore) countPosts(match func(*models.Post) bool) int64 {
	var count int64
	for _, p := range m.Posts {
		if match(p) {
			count++
		}
	}
	return count
}

func (m *MockStore) GetAllPosts(limit, offset int) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selectPosts(func(*models.Post) bool { return true }, limit, offset), nil
}

func (m *MockStore) CountAllPosts() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.countPosts(func(*models.Post) bool { return true }), nil
}

func (m *MockStore) GetPostsByGroupID(groupID uint, limit, offset int) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selectPosts(func(p *models.Post) bool {
		return p.GroupID != nil && *p.GroupID == groupID
	}, limit, offset), nil
}

func (m *MockStore) CountPostsByGroupID(groupID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.countPosts(func(p *models.Post) bool {
		return p.GroupID != nil && *p.GroupID == groupID
	}), nil
}

func (m *MockStore) GetPostsByAuthorID(authorID uint, limit, offset int) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selectPosts(func(p *models.Post) bool { return p.AuthorID == authorID }, limit, offset), nil
}

func (m *MockStore) CountPostsByAuthorID(authorID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.countPosts(func(p *models.Post) bool { return p.AuthorID == authorID }), nil
}

func (m *MockStore) followedSet(userID uint) map[uint]bool {
	followed := make(map[uint]bool)
	for _, f := range m.Follows {
		if f.UserID == userID {
			followed[f.AuthorID] = true
		}
	}
	return followed
}

func (m *MockStore) GetPostsByFollowedAuthors(userID uint, limit, offset int) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	followed := m.followedSet(userID)
	return m.selectPosts(func(p *models.Post) bool { return followed[p.AuthorID] }, limit, offset), nil
}

func (m *MockStore) CountPostsByFollowedAuthors(userID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	followed := m.followedSet(userID)
	return m.countPosts(func(p *models.Post) bool { return followed[p.AuthorID] }), nil
}

// --- CommentRepository ---

func (m *MockStore) CreateComment(comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Posts[comment.PostID]; !ok {
		return errors.New("mock: comment references missing post")
	}
	comment.ID = m.id()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	c := *comment
	m.Comments[comment.ID] = &c
	return nil
}

func (m *MockStore) GetCommentByID(id uint) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.Comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	comment := *c
	if a, ok := m.Users[comment.AuthorID]; ok {
		comment.Author = *a
	}
	return &comment, nil
}

func (m *MockStore) UpdateComment(comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Comments[comment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	c := *comment
	m.Comments[comment.ID] = &c
	return nil
}

func (m *MockStore) DeleteComment(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Comments, id)
	return nil
}

// --- FollowRepository ---

// CreateFollow mirrors the real table: unique on the pair (duplicate inserts
// are silent no-ops) and guarded by the self-follow check constraint.
func (m *MockStore) CreateFollow(follow *models.Follow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if follow.UserID == follow.AuthorID {
		return errors.New("mock: check constraint prevent_self_follow violated")
	}
	for _, f := range m.Follows {
		if f.UserID == follow.UserID && f.AuthorID == follow.AuthorID {
			return nil
		}
	}
	follow.ID = m.id()
	f := *follow
	m.Follows[follow.ID] = &f
	return nil
}

func (m *MockStore) DeleteFollow(userID, authorID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, f := range m.Follows {
		if f.UserID == userID && f.AuthorID == authorID {
			delete(m.Follows, id)
		}
	}
	return nil
}

func (m *MockStore) IsFollowing(userID, authorID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.Follows {
		if f.UserID == userID && f.AuthorID == authorID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockStore) GetFollowedAuthorIDs(userID uint) ([]uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []uint
	for _, f := range m.Follows {
		if f.UserID == userID {
			ids = append(ids, f.AuthorID)
		}
	}
	return ids, nil
}
