package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/Sedmeq/WorkTrack/internal/employee"
	"github.com/Sedmeq/WorkTrack/internal/leave"
	"github.com/Sedmeq/WorkTrack/internal/messaging/kafka"
	"github.com/Sedmeq/WorkTrack/internal/role"
	"github.com/Sedmeq/WorkTrack/internal/timelog"
	"github.com/Sedmeq/WorkTrack/internal/workschedule"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultAdminEmail    = "admin@company.com"
	DefaultAdminPassword = "Admin123!"
)

var (
	AdminEmployeeID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	AdminRoleID     = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	EmployeeRoleID  = uuid.MustParse("88888888-8888-8888-8888-888888888888")
)

// SchemaStatements run after AutoMigrate. Each is safe to repeat.
var SchemaStatements = []string{
	fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS %s ON employee_time_logs (employee_id) WHERE check_out_time IS NULL",
		timelog.OpenSessionIndex,
	),
	"CREATE INDEX IF NOT EXISTS idx_permissions_boss_status ON permissions (boss_id, status)",
	"CREATE INDEX IF NOT EXISTS idx_vacations_boss_status ON vacations (boss_id, status)",
	"CREATE INDEX IF NOT EXISTS idx_permissions_employee ON permissions (employee_id)",
	"CREATE INDEX IF NOT EXISTS idx_vacations_employee ON vacations (employee_id)",
	leaveEmployeeFK("permissions"),
	leaveEmployeeFK("vacations"),
}

// leaveEmployeeFK adds the employee foreign key the leave tables skip during
// AutoMigrate. Postgres has no ADD CONSTRAINT IF NOT EXISTS.
func leaveEmployeeFK(table string) string {
	name := "fk_" + table + "_employee"
	return fmt.Sprintf(`DO $$ BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
		ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (employee_id) REFERENCES employees (id) ON DELETE CASCADE;
	END IF;
END $$`, name, table, name)
}

type SeedConfig struct {
	AdminPassword string
}

func SeedRoles() []role.Role {
	return []role.Role{
		{ID: AdminRoleID, Name: role.AdminRoleName, Description: "Company Boss - Full Access"},
		{ID: uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"), Name: "Boss-IT", Description: "IT Department Boss"},
		{ID: uuid.MustParse("cccccccc-cccc-cccc-cccc-cccccccccccc"), Name: "Boss-Marketing", Description: "Marketing Department Boss"},
		{ID: uuid.MustParse("dddddddd-dddd-dddd-dddd-dddddddddddd"), Name: "Boss-Finance", Description: "Finance Department Boss"},
		{ID: uuid.MustParse("eeeeeeee-eeee-eeee-eeee-eeeeeeeeeeee"), Name: "Boss-HR", Description: "HR Department Boss"},
		{ID: uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff"), Name: "Boss-Sales", Description: "Sales Department Boss"},
		{ID: uuid.MustParse("77777777-7777-7777-7777-777777777777"), Name: "Boss-Operations", Description: "Operations Department Boss"},
		{ID: EmployeeRoleID, Name: role.EmployeeRoleName, Description: "Regular Employee"},
	}
}

func SeedWorkSchedules() []workschedule.WorkSchedule {
	schedule := func(n int, name, desc string, start, end, hours, minimum, lateness int) workschedule.WorkSchedule {
		return workschedule.WorkSchedule{
			ID:                 uuid.MustParse(fmt.Sprintf("99999999-9999-9999-9999-99999999999%d", n)),
			Name:               name,
			Description:        desc,
			StartTime:          workschedule.NewClock(start, 0),
			EndTime:            workschedule.NewClock(end, 0),
			RequiredWorkHours:  hours,
			MinimumWorkMinutes: minimum,
			MaxLatenessMinutes: lateness,
			IsActive:           true,
		}
	}
	return []workschedule.WorkSchedule{
		schedule(1, "8-17", "Standard 8:00-17:00 work schedule", 8, 17, 8, 480, 15),
		schedule(2, "9-18", "Standard 9:00-18:00 work schedule", 9, 18, 8, 480, 15),
		schedule(3, "9-14", "Morning shift 9:00-14:00", 9, 14, 5, 300, 10),
		schedule(4, "14-18", "Afternoon shift 14:00-18:00", 14, 18, 4, 240, 10),
	}
}

// AdminEmployee builds the seeded administrator with a freshly hashed password.
func AdminEmployee(password string) (employee.Employee, error) {
	if password == "" {
		password = DefaultAdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return employee.Employee{}, err
	}
	roleID := AdminRoleID
	return employee.Employee{
		ID:           AdminEmployeeID,
		Username:     "Admin",
		Email:        DefaultAdminEmail,
		PasswordHash: string(hash),
		Phone:        "000000000",
		RoleID:       &roleID,
		CreatedAt:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}, nil
}

// Migrate creates or updates every table and the raw indexes gorm tags cannot express.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	if err := db.AutoMigrate(
		&role.Role{},
		&workschedule.WorkSchedule{},
		&employee.Employee{},
		&timelog.EmployeeTimeLog{},
		&kafka.OutboxRecord{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for _, kind := range []leave.Kind{leave.KindPermission, leave.KindVacation} {
		if err := db.Table(kind.Table()).AutoMigrate(&leave.Request{}); err != nil {
			return fmt.Errorf("auto migrate %s: %w", kind.Table(), err)
		}
	}
	for _, stmt := range SchemaStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("schema statement %q: %w", stmt, err)
		}
	}
	return nil
}

// Seed migrates the schema and inserts the reference rows. Existing rows are
// left alone, so running it again changes nothing.
func Seed(ctx context.Context, db *gorm.DB, cfg SeedConfig, logger ...*zap.Logger) error {
	log := zap.L().Named("bootstrap.seed")
	if len(logger) > 0 && logger[0] != nil {
		log = logger[0].Named("bootstrap.seed")
	}

	if err := Migrate(ctx, db); err != nil {
		log.Error("migrate failed", zap.Error(err))
		return err
	}

	admin, err := AdminEmployee(cfg.AdminPassword)
	if err != nil {
		return err
	}

	roles := SeedRoles()
	schedules := SeedWorkSchedules()

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ignore := func() *gorm.DB {
			return tx.Clauses(clause.OnConflict{DoNothing: true})
		}

		res := ignore().Create(&roles)
		if res.Error != nil {
			return fmt.Errorf("seed roles: %w", res.Error)
		}
		log.Info("roles seeded", zap.Int64("inserted", res.RowsAffected))

		res = ignore().Create(&schedules)
		if res.Error != nil {
			return fmt.Errorf("seed work schedules: %w", res.Error)
		}
		log.Info("work schedules seeded", zap.Int64("inserted", res.RowsAffected))

		res = ignore().Omit("Role", "WorkSchedule", "Boss").Create(&admin)
		if res.Error != nil {
			return fmt.Errorf("seed admin: %w", res.Error)
		}
		log.Info("admin seeded", zap.Int64("inserted", res.RowsAffected), zap.String("email", admin.Email))
		return nil
	})
	if err != nil {
		log.Error("seed failed", zap.Error(err))
	}
	return err
}
