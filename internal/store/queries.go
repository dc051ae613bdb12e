package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Role is a project membership role.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
)

type User struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
	CreatedAt   time.Time
}

type Project struct {
	ID        string
	Name      string
	OwnerID   string
	Width     int32
	Height    int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProjectMember struct {
	ProjectID string
	UserID    string
	Role      Role
}

// MemberWithUser joins a membership row with its user for listings.
type MemberWithUser struct {
	UserID      string
	Role        Role
	DisplayName string
	Email       string
}

type Snapshot struct {
	ID        string
	ProjectID string
	Version   int32
	Document  json.RawMessage
	CreatedAt time.Time
}

// Store wraps the connection pool with typed queries.
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// --- Users ---

type CreateUserParams struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
}

func (s *Store) CreateUser(ctx context.Context, p CreateUserParams) (User, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password, display_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, password, display_name, created_at`,
		p.ID, p.Email, p.Password, p.DisplayName)

	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt); err != nil {
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, email, password, display_name, created_at
		FROM users WHERE email = $1`, email)

	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, email, password, display_name, created_at
		FROM users WHERE id = $1`, id)

	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt); err != nil {
		return User{}, err
	}
	return u, nil
}

// --- Projects ---

type CreateProjectParams struct {
	ID      string
	Name    string
	OwnerID string
	Width   int32
	Height  int32
}

func (s *Store) CreateProject(ctx context.Context, p CreateProjectParams) (Project, error) {
	if p.Width == 0 {
		p.Width = 1280
	}
	if p.Height == 0 {
		p.Height = 720
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO projects (id, name, owner_id, width, height)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, owner_id, width, height, created_at, updated_at`,
		p.ID, p.Name, p.OwnerID, p.Width, p.Height)

	var proj Project
	if err := scanProject(row.Scan, &proj); err != nil {
		return Project{}, fmt.Errorf("insert project: %w", err)
	}
	return proj, nil
}

func (s *Store) GetProject(ctx context.Context, id string) (Project, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, owner_id, width, height, created_at, updated_at
		FROM projects WHERE id = $1`, id)

	var proj Project
	if err := scanProject(row.Scan, &proj); err != nil {
		return Project{}, err
	}
	return proj, nil
}

func (s *Store) ListProjectsForUser(ctx context.Context, userID string) ([]Project, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT p.id, p.name, p.owner_id, p.width, p.height, p.created_at, p.updated_at
		FROM projects p
		JOIN project_members m ON m.project_id = p.id
		WHERE m.user_id = $1
		ORDER BY p.updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var proj Project
		if err := scanProject(rows.Scan, &proj); err != nil {
			return nil, err
		}
		projects = append(projects, proj)
	}
	return projects, rows.Err()
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}

func scanProject(scan func(...any) error, p *Project) error {
	return scan(&p.ID, &p.Name, &p.OwnerID, &p.Width, &p.Height, &p.CreatedAt, &p.UpdatedAt)
}

// --- Members ---

type AddProjectMemberParams struct {
	ProjectID string
	UserID    string
	Role      Role
}

func (s *Store) AddProjectMember(ctx context.Context, p AddProjectMemberParams) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO project_members (project_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (project_id, user_id) DO NOTHING`,
		p.ProjectID, p.UserID, p.Role)
	return err
}

func (s *Store) GetProjectMember(ctx context.Context, projectID, userID string) (ProjectMember, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT project_id, user_id, role
		FROM project_members WHERE project_id = $1 AND user_id = $2`,
		projectID, userID)

	var m ProjectMember
	if err := row.Scan(&m.ProjectID, &m.UserID, &m.Role); err != nil {
		return ProjectMember{}, err
	}
	return m, nil
}

func (s *Store) ListProjectMembers(ctx context.Context, projectID string) ([]MemberWithUser, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT m.user_id, m.role, u.display_name, u.email
		FROM project_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.project_id = $1
		ORDER BY m.role, u.display_name`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []MemberWithUser
	for rows.Next() {
		var m MemberWithUser
		if err := rows.Scan(&m.UserID, &m.Role, &m.DisplayName, &m.Email); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *Store) RemoveProjectMember(ctx context.Context, projectID, userID string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM project_members WHERE project_id = $1 AND user_id = $2`,
		projectID, userID)
	return err
}

// --- Snapshots ---

type CreateSnapshotParams struct {
	ID        string
	ProjectID string
	Version   int32
	Document  json.RawMessage
}

func (s *Store) CreateSnapshot(ctx context.Context, p CreateSnapshotParams) (Snapshot, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO snapshots (id, project_id, version, document)
		VALUES ($1, $2, $3, $4)
		RETURNING id, project_id, version, document, created_at`,
		p.ID, p.ProjectID, p.Version, p.Document)

	var snap Snapshot
	if err := row.Scan(&snap.ID, &snap.ProjectID, &snap.Version, &snap.Document, &snap.CreatedAt); err != nil {
		return Snapshot{}, fmt.Errorf("insert snapshot: %w", err)
	}
	return snap, nil
}

func (s *Store) GetLatestSnapshot(ctx context.Context, projectID string) (Snapshot, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, project_id, version, document, created_at
		FROM snapshots WHERE project_id = $1
		ORDER BY version DESC LIMIT 1`, projectID)

	var snap Snapshot
	if err := row.Scan(&snap.ID, &snap.ProjectID, &snap.Version, &snap.Document, &snap.CreatedAt); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
