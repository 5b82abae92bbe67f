package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"paystub/internal/domain/paystub"
	cryptoutil "paystub/internal/platform/crypto"
	"paystub/internal/platform/querier"
)

// PostgresStore keeps profiles in pay_profiles. The SSN and account last
// four digits are stored apart from the config document, sealed with crypto.
type PostgresStore struct {
	DB     querier.Querier
	crypto *cryptoutil.Service
}

func NewPostgresStore(db querier.Querier, crypto *cryptoutil.Service) *PostgresStore {
	return &PostgresStore{DB: db, crypto: crypto}
}

const profileColumns = "id::text, name, config, ssn_last4, account_last4, created_at, updated_at"

func (s *PostgresStore) List(ctx context.Context, limit, offset int) ([]Profile, int, error) {
	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM pay_profiles").Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT `+profileColumns+`
    FROM pay_profiles
    ORDER BY updated_at DESC, id
    LIMIT $1 OFFSET $2
  `, limitArg(limit), max(offset, 0))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []Profile{}
	for rows.Next() {
		p, err := s.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

// limitArg maps a non-positive limit to NULL, which Postgres reads as LIMIT ALL.
func limitArg(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Profile, error) {
	row := s.DB.QueryRow(ctx, "SELECT "+profileColumns+" FROM pay_profiles WHERE id = $1", id)
	p, err := s.scan(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	return p, err
}

func (s *PostgresStore) Create(ctx context.Context, p Profile) error {
	doc, ssn, account, err := s.seal(p.Config)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(ctx, `
    INSERT INTO pay_profiles (id, name, config, ssn_last4, account_last4, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
  `, p.ID, p.Name, doc, ssn, account, p.CreatedAt, p.UpdatedAt)
	return err
}

func (s *PostgresStore) Update(ctx context.Context, p Profile) error {
	doc, ssn, account, err := s.seal(p.Config)
	if err != nil {
		return err
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE pay_profiles
    SET name = $2, config = $3, ssn_last4 = $4, account_last4 = $5, updated_at = $6
    WHERE id = $1
  `, p.ID, p.Name, doc, ssn, account, p.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM pay_profiles WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// seal splits the sensitive digits out of the config document.
func (s *PostgresStore) seal(cfg paystub.PayConfiguration) ([]byte, []byte, []byte, error) {
	ssn, err := s.crypto.EncryptString(cfg.SSNLast4)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("encrypt ssn: %w", err)
	}
	account, err := s.crypto.EncryptString(cfg.AccountLast4)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("encrypt account: %w", err)
	}
	cfg.SSNLast4 = ""
	cfg.AccountLast4 = ""
	doc, err := json.Marshal(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return doc, ssn, account, nil
}

func (s *PostgresStore) scan(row pgx.Row) (Profile, error) {
	var (
		p                    Profile
		doc, ssn, account    []byte
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&p.ID, &p.Name, &doc, &ssn, &account, &createdAt, &updatedAt); err != nil {
		return Profile{}, err
	}
	if err := json.Unmarshal(doc, &p.Config); err != nil {
		return Profile{}, fmt.Errorf("decode profile %s: %w", p.ID, err)
	}
	var err error
	if p.Config.SSNLast4, err = s.crypto.DecryptString(ssn); err != nil {
		return Profile{}, fmt.Errorf("decrypt ssn: %w", err)
	}
	if p.Config.AccountLast4, err = s.crypto.DecryptString(account); err != nil {
		return Profile{}, fmt.Errorf("decrypt account: %w", err)
	}
	p.CreatedAt = createdAt.UTC()
	p.UpdatedAt = updatedAt.UTC()
	return p, nil
}
