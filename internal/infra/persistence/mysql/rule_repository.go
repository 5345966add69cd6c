package mysql

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/shopspring/decimal"

	dompromo "example.com/storefront-checkout/internal/domain/promotion"
)

type RuleRepository struct {
	db *sql.DB
}

func NewRuleRepository(db *sql.DB) *RuleRepository {
	return &RuleRepository{db: db}
}

// ruleScope and ruleCondition map the JSON columns holding the scope and
// predicate list.
type ruleScope struct {
	Kind        string  `json:"kind"`
	CategoryIDs []int64 `json:"category_ids,omitempty"`
	ProductIDs  []int64 `json:"product_ids,omitempty"`
}

type ruleCondition struct {
	Field  string  `json:"field"`
	Op     string  `json:"op"`
	Number string  `json:"number,omitempty"`
	IDs    []int64 `json:"ids,omitempty"`
}

func (r *RuleRepository) ListActive(ctx context.Context) ([]*dompromo.Rule, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, rule_type, conditions, discount_type, discount_value,
               applies_to, priority, is_active, starts_at, ends_at
        FROM dynamic_pricing_rules
        WHERE is_active = TRUE
        ORDER BY priority DESC, id ASC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []*dompromo.Rule
	for rows.Next() {
		var rule dompromo.Rule
		var condJSON, scopeJSON []byte
		if err := rows.Scan(
			&rule.ID,
			&rule.RuleType,
			&condJSON,
			&rule.DiscountType,
			&rule.DiscountValue,
			&scopeJSON,
			&rule.Priority,
			&rule.IsActive,
			&rule.StartsAt,
			&rule.EndsAt,
		); err != nil {
			return nil, err
		}

		conditions, err := decodeConditions(condJSON)
		if err != nil {
			return nil, err
		}
		scope, err := decodeScope(scopeJSON)
		if err != nil {
			return nil, err
		}
		rule.Conditions = conditions
		rule.AppliesTo = scope
		rules = append(rules, &rule)
	}
	return rules, rows.Err()
}

func decodeConditions(raw []byte) ([]dompromo.Condition, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var rows []ruleCondition
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	conditions := make([]dompromo.Condition, 0, len(rows))
	for _, row := range rows {
		cond := dompromo.Condition{
			Field: dompromo.Field(row.Field),
			Op:    dompromo.Op(row.Op),
			IDs:   row.IDs,
		}
		if row.Number != "" {
			number, err := decimal.NewFromString(row.Number)
			if err != nil {
				return nil, err
			}
			cond.Number = number
		}
		conditions = append(conditions, cond)
	}
	return conditions, nil
}

func decodeScope(raw []byte) (dompromo.Scope, error) {
	if len(raw) == 0 {
		return dompromo.Scope{Kind: dompromo.ScopeAll}, nil
	}
	var row ruleScope
	if err := json.Unmarshal(raw, &row); err != nil {
		return dompromo.Scope{}, err
	}
	kind := dompromo.ScopeKind(row.Kind)
	if kind == "" {
		kind = dompromo.ScopeAll
	}
	return dompromo.Scope{
		Kind:        kind,
		CategoryIDs: row.CategoryIDs,
		ProductIDs:  row.ProductIDs,
	}, nil
}
