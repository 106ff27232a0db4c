package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/creditwise/backend/internal/domain"
)

const cardColumns = `id, name, issuer, network, joining_fee, annual_fee, fee_currency,
	fee_waiver_condition, reward_type, base_reward_rate, reward_rate, reward_details,
	special_perks, perks, best_for, card_category, category, min_income, credit_score,
	age_min, age_max, invite_only, apply_link, image_url`

// PostgresRepository stores the card catalog. The table keeps both halves of
// each legacy synonym pair (reward_rate/base_reward_rate, perks/special_perks,
// category/card_category); writes populate both and reads collapse them
// through CardRecord.Normalize.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a repository backed by the given pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns every card in the catalog.
func (r *PostgresRepository) List(ctx context.Context) ([]domain.Card, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf("SELECT %s FROM credit_cards ORDER BY name", cardColumns))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer rows.Close()

	return collectCards(rows)
}

// GetByID fetches one card.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf("SELECT %s FROM credit_cards WHERE id = $1", cardColumns), id)
	rec, err := scanCard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCardNotFound
		}
		return nil, fmt.Errorf("get card: %w", err)
	}
	card := rec.Normalize()
	return &card, nil
}

// Search filters the catalog. Tier and the term match against both synonym
// columns so rows written by older tooling still surface.
func (r *PostgresRepository) Search(ctx context.Context, filter domain.CardFilter) ([]domain.Card, error) {
	var conds []string
	var args []interface{}

	if filter.Term != "" {
		args = append(args, "%"+strings.ToLower(filter.Term)+"%")
		conds = append(conds, fmt.Sprintf("(LOWER(name) LIKE $%d OR LOWER(issuer) LIKE $%d)", len(args), len(args)))
	}
	if filter.Tier != "" {
		args = append(args, filter.Tier)
		conds = append(conds, fmt.Sprintf("(card_category = $%d OR category = $%d)", len(args), len(args)))
	}
	if filter.Network != "" {
		args = append(args, filter.Network)
		conds = append(conds, fmt.Sprintf("network = $%d", len(args)))
	}
	if filter.MinIncome > 0 {
		args = append(args, filter.MinIncome)
		conds = append(conds, fmt.Sprintf("min_income >= $%d", len(args)))
	}
	if filter.MaxIncome > 0 {
		args = append(args, filter.MaxIncome)
		conds = append(conds, fmt.Sprintf("min_income <= $%d", len(args)))
	}

	query := fmt.Sprintf("SELECT %s FROM credit_cards", cardColumns)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY name"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search cards: %w", err)
	}
	defer rows.Close()

	return collectCards(rows)
}

// Create inserts a card, generating an id when none is given.
func (r *PostgresRepository) Create(ctx context.Context, card domain.Card) (*domain.Card, error) {
	if card.ID == "" {
		card.ID = uuid.New().String()
	}
	rec := card.Record()

	_, err := r.db.Exec(ctx, `
		INSERT INTO credit_cards (id, name, issuer, network, joining_fee, annual_fee,
			fee_currency, fee_waiver_condition, reward_type, base_reward_rate, reward_rate,
			reward_details, special_perks, perks, best_for, card_category, category,
			min_income, credit_score, age_min, age_max, invite_only, apply_link, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24)
	`, rec.ID, rec.Name, rec.Issuer, rec.Network, rec.JoiningFee, rec.AnnualFee,
		rec.FeeCurrency, rec.FeeWaiverCondition, rec.RewardType, rec.BaseRewardRate, rec.RewardRate,
		rec.RewardDetails, rec.SpecialPerks, rec.Perks, rec.BestFor, rec.CardCategory, rec.Category,
		rec.MinIncome, rec.CreditScore, rec.AgeMin, rec.AgeMax, rec.InviteOnly, rec.ApplyLink, rec.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("insert card: %w", err)
	}
	return &card, nil
}

// Update replaces a card by id.
func (r *PostgresRepository) Update(ctx context.Context, id string, card domain.Card) (*domain.Card, error) {
	card.ID = id
	rec := card.Record()

	tag, err := r.db.Exec(ctx, `
		UPDATE credit_cards SET name = $2, issuer = $3, network = $4, joining_fee = $5,
			annual_fee = $6, fee_currency = $7, fee_waiver_condition = $8, reward_type = $9,
			base_reward_rate = $10, reward_rate = $11, reward_details = $12, special_perks = $13,
			perks = $14, best_for = $15, card_category = $16, category = $17, min_income = $18,
			credit_score = $19, age_min = $20, age_max = $21, invite_only = $22,
			apply_link = $23, image_url = $24
		WHERE id = $1
	`, rec.ID, rec.Name, rec.Issuer, rec.Network, rec.JoiningFee,
		rec.AnnualFee, rec.FeeCurrency, rec.FeeWaiverCondition, rec.RewardType,
		rec.BaseRewardRate, rec.RewardRate, rec.RewardDetails, rec.SpecialPerks,
		rec.Perks, rec.BestFor, rec.CardCategory, rec.Category, rec.MinIncome,
		rec.CreditScore, rec.AgeMin, rec.AgeMax, rec.InviteOnly,
		rec.ApplyLink, rec.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("update card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrCardNotFound
	}
	return &card, nil
}

// Delete removes a card by id.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM credit_cards WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}

// DeleteAll wipes the catalog.
func (r *PostgresRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM credit_cards"); err != nil {
		return fmt.Errorf("clear catalog: %w", err)
	}
	return nil
}

func collectCards(rows pgx.Rows) ([]domain.Card, error) {
	var cards []domain.Card
	for rows.Next() {
		rec, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, rec.Normalize())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}
	return cards, nil
}

func scanCard(row pgx.Row) (domain.CardRecord, error) {
	var rec domain.CardRecord
	err := row.Scan(&rec.ID, &rec.Name, &rec.Issuer, &rec.Network, &rec.JoiningFee,
		&rec.AnnualFee, &rec.FeeCurrency, &rec.FeeWaiverCondition, &rec.RewardType,
		&rec.BaseRewardRate, &rec.RewardRate, &rec.RewardDetails, &rec.SpecialPerks,
		&rec.Perks, &rec.BestFor, &rec.CardCategory, &rec.Category, &rec.MinIncome,
		&rec.CreditScore, &rec.AgeMin, &rec.AgeMax, &rec.InviteOnly,
		&rec.ApplyLink, &rec.ImageURL)
	return rec, err
}
