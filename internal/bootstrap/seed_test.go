package bootstrap

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"io"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/Sedmeq/WorkTrack/internal/role"
	"github.com/Sedmeq/WorkTrack/internal/timelog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestSeedRoles(t *testing.T) {
	roles := SeedRoles()
	require.Len(t, roles, 8)

	ids := map[uuid.UUID]bool{}
	names := map[string]bool{}
	tiers := map[role.Tier]int{}
	for _, r := range roles {
		assert.False(t, ids[r.ID], "duplicate id %s", r.ID)
		assert.False(t, names[r.Name], "duplicate name %s", r.Name)
		ids[r.ID] = true
		names[r.Name] = true
		tiers[role.TierOf(r.Name)]++
	}

	assert.True(t, ids[AdminRoleID])
	assert.True(t, ids[EmployeeRoleID])
	assert.Equal(t, 1, tiers[role.TierAdmin])
	assert.Equal(t, 6, tiers[role.TierGroupBoss])
	assert.Equal(t, 1, tiers[role.TierRegular])
}

func TestSeedWorkSchedules(t *testing.T) {
	schedules := SeedWorkSchedules()
	require.Len(t, schedules, 4)

	assert.Equal(t, "99999999-9999-9999-9999-999999999991", schedules[0].ID.String())
	assert.Equal(t, "08:00", schedules[0].StartTime.String())
	assert.Equal(t, "17:00", schedules[0].EndTime.String())
	assert.Equal(t, 300, schedules[2].MinimumWorkMinutes)
	assert.Equal(t, "99999999-9999-9999-9999-999999999994", schedules[3].ID.String())
	for _, s := range schedules {
		assert.True(t, s.IsActive)
		assert.False(t, s.Overnight())
	}
}

func TestAdminEmployee(t *testing.T) {
	admin, err := AdminEmployee("")
	require.NoError(t, err)

	assert.Equal(t, AdminEmployeeID, admin.ID)
	assert.Equal(t, DefaultAdminEmail, admin.Email)
	require.NotNil(t, admin.RoleID)
	assert.Equal(t, AdminRoleID, *admin.RoleID)
	assert.Nil(t, admin.BossID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(DefaultAdminPassword)))

	custom, err := AdminEmployee("changed-secret")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(custom.PasswordHash), []byte("changed-secret")))
}

func TestSchemaStatements_OpenSessionIndexIsPartialAndRepeatable(t *testing.T) {
	require.NotEmpty(t, SchemaStatements)
	first := SchemaStatements[0]
	assert.Contains(t, first, timelog.OpenSessionIndex)
	assert.Contains(t, first, "WHERE check_out_time IS NULL")
	for _, stmt := range SchemaStatements {
		assert.True(t, strings.Contains(stmt, "IF NOT EXISTS"), stmt)
	}
}

// sqlRecorder is a database/sql driver that accepts every statement, records
// it and answers queries with no rows, so Migrate sees an empty database.
type sqlRecorder struct {
	mu    sync.Mutex
	stmts []string
}

func (r *sqlRecorder) add(q string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stmts = append(r.stmts, q)
}

func (r *sqlRecorder) take() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.stmts
	r.stmts = nil
	return out
}

func (r *sqlRecorder) Connect(context.Context) (driver.Conn, error) { return recordingConn{r}, nil }
func (r *sqlRecorder) Driver() driver.Driver                        { return recordingDriver{r} }

type recordingDriver struct{ r *sqlRecorder }

func (d recordingDriver) Open(string) (driver.Conn, error) { return recordingConn{d.r}, nil }

type recordingConn struct{ r *sqlRecorder }

func (c recordingConn) Prepare(q string) (driver.Stmt, error)    { return recordingStmt{c.r, q}, nil }
func (c recordingConn) Close() error                             { return nil }
func (c recordingConn) Begin() (driver.Tx, error)                { return recordingTx{}, nil }
func (c recordingConn) CheckNamedValue(*driver.NamedValue) error { return nil }

func (c recordingConn) ExecContext(_ context.Context, q string, _ []driver.NamedValue) (driver.Result, error) {
	c.r.add(q)
	return driver.RowsAffected(0), nil
}

func (c recordingConn) QueryContext(_ context.Context, q string, _ []driver.NamedValue) (driver.Rows, error) {
	c.r.add(q)
	return noRows{}, nil
}

type recordingStmt struct {
	r *sqlRecorder
	q string
}

func (s recordingStmt) Close() error  { return nil }
func (s recordingStmt) NumInput() int { return -1 }

func (s recordingStmt) Exec([]driver.Value) (driver.Result, error) {
	s.r.add(s.q)
	return driver.RowsAffected(0), nil
}

func (s recordingStmt) Query([]driver.Value) (driver.Rows, error) {
	s.r.add(s.q)
	return noRows{}, nil
}

type recordingTx struct{}

func (recordingTx) Commit() error   { return nil }
func (recordingTx) Rollback() error { return nil }

type noRows struct{}

func (noRows) Columns() []string         { return []string{} }
func (noRows) Close() error              { return nil }
func (noRows) Next([]driver.Value) error { return io.EOF }

func openRecordingDB(t *testing.T) (*gorm.DB, *sqlRecorder) {
	t.Helper()
	rec := &sqlRecorder{}
	sqlDB := sql.OpenDB(rec)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	return db, rec
}

var insertTarget = regexp.MustCompile(`^INSERT INTO "(\w+)"`)

func insertsOf(stmts []string) (tables []string, sqls []string) {
	for _, stmt := range stmts {
		if m := insertTarget.FindStringSubmatch(strings.TrimSpace(stmt)); m != nil {
			tables = append(tables, m[1])
			sqls = append(sqls, stmt)
		}
	}
	return tables, sqls
}

func TestSeed_MigratesAndInsertsReferenceRows(t *testing.T) {
	db, rec := openRecordingDB(t)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, db, SeedConfig{AdminPassword: "first-secret"}, zap.NewNop()))
	stmts := rec.take()

	joined := strings.Join(stmts, "\n")
	assert.Contains(t, joined, `CREATE TABLE "permissions"`)
	assert.Contains(t, joined, `CREATE TABLE "vacations"`)
	assert.Contains(t, joined, `CREATE TABLE "employee_time_logs"`)
	for _, stmt := range SchemaStatements {
		assert.Contains(t, stmts, stmt)
	}

	tables, inserts := insertsOf(stmts)
	assert.Equal(t, []string{"roles", "work_schedules", "employees"}, tables)
	for _, stmt := range inserts {
		assert.Contains(t, stmt, "ON CONFLICT DO NOTHING")
	}
}

func TestSeed_SecondRunOnlyIgnoresConflicts(t *testing.T) {
	db, rec := openRecordingDB(t)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, db, SeedConfig{}, zap.NewNop()))
	rec.take()

	require.NoError(t, Seed(ctx, db, SeedConfig{}, zap.NewNop()))
	stmts := rec.take()

	tables, inserts := insertsOf(stmts)
	assert.Equal(t, []string{"roles", "work_schedules", "employees"}, tables)
	for _, stmt := range inserts {
		assert.Contains(t, stmt, "ON CONFLICT DO NOTHING")
	}
	for _, stmt := range stmts {
		upper := strings.ToUpper(strings.TrimSpace(stmt))
		assert.False(t, strings.HasPrefix(upper, "UPDATE"), stmt)
		assert.False(t, strings.HasPrefix(upper, "DELETE"), stmt)
	}
}

func TestSchemaStatements_LeaveTablesReferenceEmployees(t *testing.T) {
	for _, table := range []string{"permissions", "vacations"} {
		stmt := leaveEmployeeFK(table)
		assert.Contains(t, stmt, "ALTER TABLE "+table+" ADD CONSTRAINT fk_"+table+"_employee")
		assert.Contains(t, stmt, "REFERENCES employees (id)")
		assert.Contains(t, SchemaStatements, stmt)
	}
}
