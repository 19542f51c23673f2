package services

import (
	"context"
	"sync"

	"github.com/avoronin/tasktracker/internal/models"
	"github.com/avoronin/tasktracker/internal/repository"
)

// memUserRepo is an in-memory repository.UserRepository used to test
// services without a database.
type memUserRepo struct {
	mu    sync.Mutex
	users []*models.User

	// createErr forces the next Create call to fail, simulating a
	// registration race lost at the storage constraint.
	createErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{}
}

func copyUser(user *models.User) *models.User {
	u := *user
	return &u
}

func (r *memUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}
	for _, u := range r.users {
		if u.Login == user.Login {
			return repository.ErrDuplicateLogin
		}
		if u.Phone == user.Phone {
			return repository.ErrDuplicatePhone
		}
	}
	r.users = append(r.users, copyUser(user))
	return nil
}

func (r *memUserRepo) FindByLogin(_ context.Context, login string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Login == login {
			return copyUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) FindByPhone(_ context.Context, phone string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Phone == phone {
			return copyUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID == id {
			found := copyUser(u)
			found.Password = ""
			return found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) ListAll(_ context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		found := copyUser(u)
		found.Password = ""
		users = append(users, found)
	}
	return users, nil
}

// memTaskRepo is an in-memory repository.TaskRepository. Listing joins
// display names from an attached memUserRepo the way the SQL
// implementation joins the users table.
type memTaskRepo struct {
	mu    sync.Mutex
	tasks []*models.Task
	users *memUserRepo
}

func newMemTaskRepo(users *memUserRepo) *memTaskRepo {
	return &memTaskRepo{users: users}
}

func copyTask(task *models.Task) *models.Task {
	t := *task
	return &t
}

func (r *memTaskRepo) Create(_ context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = append(r.tasks, copyTask(task))
	return nil
}

func (r *memTaskRepo) FindByID(_ context.Context, id string) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tasks {
		if t.ID == id {
			return copyTask(t), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memTaskRepo) ListForUser(ctx context.Context, userID string) ([]*models.TaskWithNames, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var items []*models.TaskWithNames
	// Newest first, mirroring ORDER BY created_at DESC.
	for i := len(r.tasks) - 1; i >= 0; i-- {
		t := r.tasks[i]
		if t.Archived {
			continue
		}
		if t.CreatorID != userID &&
			(t.AssigneeID == nil || *t.AssigneeID != userID) {
			continue
		}

		item := &models.TaskWithNames{Task: *copyTask(t)}
		item.CreatorName = r.firstName(t.CreatorID)
		if t.AssigneeID != nil {
			name := r.firstName(*t.AssigneeID)
			item.AssigneeName = &name
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *memTaskRepo) firstName(userID string) string {
	for _, u := range r.users.users {
		if u.ID == userID {
			return u.FirstName
		}
	}
	return ""
}

func (r *memTaskRepo) UpdateStatus(_ context.Context, id, status string) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tasks {
		if t.ID == id {
			t.Status = status
			return copyTask(t), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memTaskRepo) Archive(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tasks {
		if t.ID == id {
			t.Archived = true
			return nil
		}
	}
	return repository.ErrNotFound
}
