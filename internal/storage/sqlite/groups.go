package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/groupledger/internal/models"
)

// rowQuerier is satisfied by both *sql.DB and *sql.Tx.
type rowQuerier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SaveGroup upserts the group row and replaces all of its child rows in a
// single transaction.
func (s *SQLiteStore) SaveGroup(ctx context.Context, g *models.Group) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO groups (id, invite_code, name, description, currency, category, created_at, last_activity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			invite_code = excluded.invite_code,
			name = excluded.name,
			description = excluded.description,
			currency = excluded.currency,
			category = excluded.category,
			last_activity = excluded.last_activity`,
		g.ID, g.InviteCode, g.Name, g.Description, g.Currency, g.Category,
		toUnix(g.CreatedAt), toUnix(g.LastActivity),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert group: %w", err)
	}

	// Payers and splits cascade from expenses.
	for _, table := range []string{"members", "expenses", "settlements", "budgets"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE group_id = ?", g.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, m := range g.Members {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO members (group_id, id, position, name, email) VALUES (?, ?, ?, ?, ?)",
			g.ID, m.ID, i, m.Name, m.Email,
		)
		if err != nil {
			return fmt.Errorf("failed to insert member: %w", err)
		}
	}

	for i := range g.Expenses {
		if err := insertExpense(ctx, tx, g.ID, i, &g.Expenses[i]); err != nil {
			return err
		}
	}

	for i, st := range g.Settlements {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO settlements (id, group_id, position, from_member, to_member, amount, date, notes, created_at, created_by)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			st.ID, g.ID, i, st.From, st.To, st.Amount.String(), st.Date.String(), st.Notes,
			toUnix(st.CreatedAt), st.CreatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert settlement: %w", err)
		}
	}

	for i, b := range g.Budgets {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO budgets (id, group_id, position, name, amount, category, period, start_date, end_date, notes, created_at, created_by)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.ID, g.ID, i, b.Name, b.Amount.String(), b.Category, string(b.Period),
			b.StartDate.String(), b.EndDate.String(), b.Notes, toUnix(b.CreatedAt), b.CreatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert budget: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertExpense(ctx context.Context, tx *sql.Tx, groupID string, pos int, e *models.Expense) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO expenses (id, group_id, position, description, amount, category, date, notes, split_type, created_at, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, groupID, pos, e.Description, e.Amount.String(), e.Category, e.Date.String(), e.Notes,
		string(e.SplitType), toUnix(e.CreatedAt), e.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, p := range e.Payers {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_payers (expense_id, position, member_id, amount) VALUES (?, ?, ?, ?)",
			e.ID, i, p.MemberID, p.Amount.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert payer: %w", err)
		}
	}

	for i, sh := range e.Splits {
		var (
			percentage, shares, adjustment sql.NullString
		)
		switch d := sh.Detail.(type) {
		case models.PercentageDetail:
			percentage = sql.NullString{String: d.Percentage.String(), Valid: true}
		case models.SharesDetail:
			shares = sql.NullString{String: d.Shares.String(), Valid: true}
		case models.AdjustmentDetail:
			adjustment = sql.NullString{String: d.Adjustment.String(), Valid: true}
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO expense_splits (expense_id, position, member_id, amount, percentage, shares, adjustment)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.ID, i, sh.MemberID, sh.Amount.String(), percentage, shares, adjustment,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}
	return nil
}

// GetGroup retrieves a group by ID with its full history.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	return loadGroup(ctx, s.db, "id", groupID)
}

// FindGroupByInviteCode retrieves the group that owns code.
func (s *SQLiteStore) FindGroupByInviteCode(ctx context.Context, code string) (*models.Group, error) {
	return loadGroup(ctx, s.db, "invite_code", code)
}

// ListGroups returns every group, most recently active first.
func (s *SQLiteStore) ListGroups(ctx context.Context) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM groups ORDER BY last_activity DESC, name")
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan group id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	groups := make([]*models.Group, 0, len(ids))
	for _, id := range ids {
		g, err := loadGroup(ctx, s.db, "id", id)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// DeleteGroup removes a group; child rows go with it via ON DELETE CASCADE.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("group %s: %w", groupID, models.ErrNotFound)
	}
	return nil
}

func loadGroup(ctx context.Context, q rowQuerier, column, value string) (*models.Group, error) {
	g := &models.Group{
		Members:     []models.Member{},
		Expenses:    []models.Expense{},
		Settlements: []models.Settlement{},
		Budgets:     []models.Budget{},
	}
	var createdAt, lastActivity int64
	err := q.QueryRowContext(ctx,
		"SELECT id, invite_code, name, description, currency, category, created_at, last_activity FROM groups WHERE "+column+" = ?",
		value,
	).Scan(&g.ID, &g.InviteCode, &g.Name, &g.Description, &g.Currency, &g.Category, &createdAt, &lastActivity)
	if err != nil {
		return nil, notFound("group", value, err)
	}
	g.CreatedAt = fromUnix(createdAt)
	g.LastActivity = fromUnix(lastActivity)

	if err := loadMembers(ctx, q, g); err != nil {
		return nil, err
	}
	if err := loadExpenses(ctx, q, g); err != nil {
		return nil, err
	}
	if err := loadSettlements(ctx, q, g); err != nil {
		return nil, err
	}
	if err := loadBudgets(ctx, q, g); err != nil {
		return nil, err
	}
	return g, nil
}

func loadMembers(ctx context.Context, q rowQuerier, g *models.Group) error {
	rows, err := q.QueryContext(ctx,
		"SELECT id, name, email FROM members WHERE group_id = ? ORDER BY position", g.ID)
	if err != nil {
		return fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email); err != nil {
			return fmt.Errorf("failed to scan member: %w", err)
		}
		g.Members = append(g.Members, m)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate members: %w", err)
	}
	return nil
}

func loadExpenses(ctx context.Context, q rowQuerier, g *models.Group) error {
	rows, err := q.QueryContext(ctx, `
		SELECT id, description, amount, category, date, notes, split_type, created_at, created_by
		FROM expenses WHERE group_id = ? ORDER BY position`, g.ID)
	if err != nil {
		return fmt.Errorf("failed to get expenses: %w", err)
	}
	defer rows.Close()

	index := make(map[string]int)
	for rows.Next() {
		var (
			e         models.Expense
			date      string
			splitType string
			createdAt int64
		)
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.Category, &date, &e.Notes,
			&splitType, &createdAt, &e.CreatedBy); err != nil {
			return fmt.Errorf("failed to scan expense: %w", err)
		}
		if e.Date, err = models.ParseDate(date); err != nil {
			return fmt.Errorf("expense %s: %w", e.ID, err)
		}
		e.SplitType = models.SplitType(splitType)
		e.CreatedAt = fromUnix(createdAt)
		e.Payers = []models.PayerContribution{}
		e.Splits = []models.SplitShare{}
		index[e.ID] = len(g.Expenses)
		g.Expenses = append(g.Expenses, e)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate expenses: %w", err)
	}
	rows.Close()

	if len(g.Expenses) == 0 {
		return nil
	}
	if err := loadPayers(ctx, q, g, index); err != nil {
		return err
	}
	return loadSplits(ctx, q, g, index)
}

func loadPayers(ctx context.Context, q rowQuerier, g *models.Group, index map[string]int) error {
	rows, err := q.QueryContext(ctx, `
		SELECT p.expense_id, p.member_id, p.amount
		FROM expense_payers p JOIN expenses e ON e.id = p.expense_id
		WHERE e.group_id = ? ORDER BY p.expense_id, p.position`, g.ID)
	if err != nil {
		return fmt.Errorf("failed to get payers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			expenseID string
			p         models.PayerContribution
		)
		if err := rows.Scan(&expenseID, &p.MemberID, &p.Amount); err != nil {
			return fmt.Errorf("failed to scan payer: %w", err)
		}
		e := &g.Expenses[index[expenseID]]
		e.Payers = append(e.Payers, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate payers: %w", err)
	}
	return nil
}

func loadSplits(ctx context.Context, q rowQuerier, g *models.Group, index map[string]int) error {
	rows, err := q.QueryContext(ctx, `
		SELECT s.expense_id, s.member_id, s.amount, s.percentage, s.shares, s.adjustment
		FROM expense_splits s JOIN expenses e ON e.id = s.expense_id
		WHERE e.group_id = ? ORDER BY s.expense_id, s.position`, g.ID)
	if err != nil {
		return fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			expenseID              string
			sh                     models.SplitShare
			percentage, shares, adjustment decimal.NullDecimal
		)
		if err := rows.Scan(&expenseID, &sh.MemberID, &sh.Amount, &percentage, &shares, &adjustment); err != nil {
			return fmt.Errorf("failed to scan split: %w", err)
		}
		switch {
		case percentage.Valid:
			sh.Detail = models.PercentageDetail{Percentage: percentage.Decimal}
		case shares.Valid:
			sh.Detail = models.SharesDetail{Shares: shares.Decimal}
		case adjustment.Valid:
			sh.Detail = models.AdjustmentDetail{Adjustment: adjustment.Decimal}
		}
		e := &g.Expenses[index[expenseID]]
		e.Splits = append(e.Splits, sh)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate splits: %w", err)
	}
	return nil
}

func loadSettlements(ctx context.Context, q rowQuerier, g *models.Group) error {
	rows, err := q.QueryContext(ctx, `
		SELECT id, from_member, to_member, amount, date, notes, created_at, created_by
		FROM settlements WHERE group_id = ? ORDER BY position`, g.ID)
	if err != nil {
		return fmt.Errorf("failed to get settlements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			st        models.Settlement
			date      string
			createdAt int64
		)
		if err := rows.Scan(&st.ID, &st.From, &st.To, &st.Amount, &date, &st.Notes, &createdAt, &st.CreatedBy); err != nil {
			return fmt.Errorf("failed to scan settlement: %w", err)
		}
		if st.Date, err = models.ParseDate(date); err != nil {
			return fmt.Errorf("settlement %s: %w", st.ID, err)
		}
		st.CreatedAt = fromUnix(createdAt)
		g.Settlements = append(g.Settlements, st)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate settlements: %w", err)
	}
	return nil
}

func loadBudgets(ctx context.Context, q rowQuerier, g *models.Group) error {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, amount, category, period, start_date, end_date, notes, created_at, created_by
		FROM budgets WHERE group_id = ? ORDER BY position`, g.ID)
	if err != nil {
		return fmt.Errorf("failed to get budgets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			b          models.Budget
			period     string
			start, end string
			createdAt  int64
		)
		if err := rows.Scan(&b.ID, &b.Name, &b.Amount, &b.Category, &period, &start, &end,
			&b.Notes, &createdAt, &b.CreatedBy); err != nil {
			return fmt.Errorf("failed to scan budget: %w", err)
		}
		b.Period = models.BudgetPeriod(period)
		if b.StartDate, err = models.ParseDate(start); err != nil {
			return fmt.Errorf("budget %s: %w", b.ID, err)
		}
		if b.EndDate, err = models.ParseDate(end); err != nil {
			return fmt.Errorf("budget %s: %w", b.ID, err)
		}
		b.CreatedAt = fromUnix(createdAt)
		g.Budgets = append(g.Budgets, b)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate budgets: %w", err)
	}
	return nil
}
