package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/LaurentVidal95/LocalMLManager/internal/models"
)

// Experiment repository errors.
var (
	ErrExperimentNotFound      = errors.New("experiment not found")
	ErrExperimentAlreadyExists = errors.New("experiment already exists")
)

// ExperimentRepository handles experiment registry persistence. Experiments
// are scoped by their experiments-root directory so one database can index
// several roots.
type ExperimentRepository struct {
	db *DB
}

// NewExperimentRepository creates a new ExperimentRepository.
func NewExperimentRepository(db *DB) *ExperimentRepository {
	return &ExperimentRepository{db: db}
}

// Create registers a new experiment under scope.
func (r *ExperimentRepository) Create(ctx context.Context, scope string, exp *models.Experiment) error {
	if err := exp.Validate(); err != nil {
		return fmt.Errorf("invalid experiment: %w", err)
	}

	if exp.CreatedAt.IsZero() {
		exp.CreatedAt = time.Now().UTC()
	}

	tagsJSON, err := marshalNullable(exp.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	summaryJSON, err := marshalNullable(exp.Summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO experiments (
			id, scope, dir, description, id_mode,
			tags_json, summary_json, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		exp.ID,
		scope,
		exp.Dir,
		exp.Description,
		exp.IDMode,
		tagsJSON,
		summaryJSON,
		exp.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrExperimentAlreadyExists
		}
		return fmt.Errorf("insert experiment: %w", err)
	}

	return nil
}

// Get retrieves one experiment by scope and id.
func (r *ExperimentRepository) Get(ctx context.Context, scope, id string) (*models.Experiment, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, dir, description, id_mode, tags_json, summary_json, created_at
		FROM experiments WHERE scope = ? AND id = ?
	`, scope, id)

	return r.scanExperiment(row)
}

// List retrieves all experiments under scope, oldest first. Filters are
// key=value pairs matched against registry columns (id, description,
// id_mode, tag) and flattened summary leaves.
func (r *ExperimentRepository) List(ctx context.Context, scope string, filters map[string]string) ([]*models.Experiment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, dir, description, id_mode, tags_json, summary_json, created_at
		FROM experiments
		WHERE scope = ?
		ORDER BY created_at, id
	`, scope)
	if err != nil {
		return nil, fmt.Errorf("query experiments: %w", err)
	}
	defer rows.Close()

	experiments := make([]*models.Experiment, 0)
	for rows.Next() {
		exp, err := r.scanExperiment(rows)
		if err != nil {
			return nil, err
		}
		if matchesFilters(exp, filters) {
			experiments = append(experiments, exp)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate experiments: %w", err)
	}

	return experiments, nil
}

// Delete removes an experiment row. The directory on disk is untouched.
func (r *ExperimentRepository) Delete(ctx context.Context, scope, id string) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM experiments WHERE scope = ? AND id = ?
	`, scope, id)
	if err != nil {
		return fmt.Errorf("delete experiment: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrExperimentNotFound
	}
	return nil
}

func (r *ExperimentRepository) scanExperiment(scanner interface {
	Scan(...any) error
}) (*models.Experiment, error) {
	var (
		id          string
		dir         string
		description string
		idMode      string
		tagsJSON    sql.NullString
		summaryJSON sql.NullString
		createdAt   string
	)

	if err := scanner.Scan(&id, &dir, &description, &idMode, &tagsJSON, &summaryJSON, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrExperimentNotFound
		}
		return nil, fmt.Errorf("scan experiment: %w", err)
	}

	exp := &models.Experiment{
		ID:          id,
		Dir:         dir,
		Description: description,
		IDMode:      idMode,
	}

	if tagsJSON.Valid && tagsJSON.String != "" {
		_ = json.Unmarshal([]byte(tagsJSON.String), &exp.Tags)
	}
	if summaryJSON.Valid && summaryJSON.String != "" {
		_ = json.Unmarshal([]byte(summaryJSON.String), &exp.Summary)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		exp.CreatedAt = t
	}

	return exp, nil
}

func matchesFilters(exp *models.Experiment, filters map[string]string) bool {
	if len(filters) == 0 {
		return true
	}

	leaves := exp.SummaryLeaves()
	for key, want := range filters {
		switch key {
		case "id":
			if exp.ID != want {
				return false
			}
		case "description":
			if exp.Description != want {
				return false
			}
		case "id_mode":
			if exp.IDMode != want {
				return false
			}
		case "tag":
			if !containsString(exp.Tags, want) {
				return false
			}
		default:
			value, ok := leaves[key]
			if !ok || fmt.Sprintf("%v", value) != want {
				return false
			}
		}
	}
	return true
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func marshalNullable(value any) (*string, error) {
	switch v := value.(type) {
	case []string:
		if len(v) == 0 {
			return nil, nil
		}
	case map[string]any:
		if len(v) == 0 {
			return nil, nil
		}
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	s := string(data)
	return &s, nil
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
