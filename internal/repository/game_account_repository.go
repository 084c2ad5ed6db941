package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/AndersondSilva/wow-server-dashboard/internal/models"
	"github.com/go-sql-driver/mysql"
)

// MySQL duplicate-entry error number, raised by the unique key on
// account.username.
const mysqlDuplicateEntry = 1062

// GameAccountRepository reads and writes the game server's `account` table.
// The game server owns this schema; the dashboard only inserts rows it has
// provisioned and updates emails on its behalf.
type GameAccountRepository struct {
	db *sql.DB
}

func NewGameAccountRepository(db *sql.DB) *GameAccountRepository {
	return &GameAccountRepository{db: db}
}

// Create inserts a provisioned game account and returns its generated id.
// Username must already be upper-folded and digest must be the legacy SHA1
// value.
func (r *GameAccountRepository) Create(ctx context.Context, username, digest, email string) (uint32, error) {
	query := `INSERT INTO account (username, sha_pass_hash, email, expansion) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, username, digest, email, models.DefaultExpansion)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return 0, ErrDuplicateUsername
		}
		return 0, fmt.Errorf("failed to create game account: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted account id: %w", err)
	}
	return uint32(id), nil
}

// UsernameExists reports whether an account row exists for the username,
// case-folded upper.
func (r *GameAccountRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	query := `SELECT 1 FROM account WHERE username = ?`
	var one int
	err := r.db.QueryRowContext(ctx, query, strings.ToUpper(username)).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return true, nil
}

// FindByCredentials looks up an account by username and legacy digest. This
// is the game-client login path; it never consults the dashboard user store.
func (r *GameAccountRepository) FindByCredentials(ctx context.Context, username, digest string) (*models.GameAccount, error) {
	query := `SELECT id, username, email, expansion FROM account WHERE username = ? AND sha_pass_hash = ?`
	var acc models.GameAccount
	err := r.db.QueryRowContext(ctx, query, strings.ToUpper(username), digest).Scan(
		&acc.ID, &acc.Username, &acc.Email, &acc.Expansion,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up game account: %w", err)
	}
	acc.ShaPassHash = digest
	return &acc, nil
}

// UpdateEmail propagates a dashboard email change to the game account.
func (r *GameAccountRepository) UpdateEmail(ctx context.Context, id uint32, email string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE account SET email = ? WHERE id = ?`, email, id)
	if err != nil {
		return fmt.Errorf("failed to update game account email: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureRealm upserts realmlist row 1 with the configured realm identity so
// game clients resolve the right address. Runs once at startup; the caller
// treats a failure as a warning, not a fatal error.
func (r *GameAccountRepository) EnsureRealm(ctx context.Context, name, address string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE realmlist SET name = ?, address = ?, port = 8085 WHERE id = 1`, name, address)
	if err != nil {
		return fmt.Errorf("failed to update realmlist: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows > 0 {
		return nil
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO realmlist (id, name, address, port, icon, color, timezone, allowedSecurityLevel, population)
		 VALUES (1, ?, ?, 8085, 1, 0, 1, 0, 0)`, name, address)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			// Row 1 already holds these exact values; the UPDATE matched it
			// but affected nothing.
			return nil
		}
		return fmt.Errorf("failed to insert realmlist: %w", err)
	}
	return nil
}
