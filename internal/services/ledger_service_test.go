package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"cozycomfort/internal/common"
	"cozycomfort/internal/models"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	mock           pgxmock.PgxPoolIface
	svc            LedgerService
	manufacturerID uuid.UUID
	distributorID  uuid.UUID
	sellerID       uuid.UUID
	productID      uuid.UUID
	context        context.Context
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.svc = NewLedgerService(mock)
	suite.manufacturerID = uuid.New()
	suite.distributorID = uuid.New()
	suite.sellerID = uuid.New()
	suite.productID = uuid.New()
	suite.context = context.Background()
}

func (suite *LedgerServiceTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (suite *LedgerServiceTestSuite) lockedRow(ownerID uuid.UUID, role models.Role, quantity int) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "product_id", "owner_id", "owner_role", "quantity", "last_updated"}).
		AddRow(uuid.New(), suite.productID, ownerID, role, quantity, time.Now())
}

func (suite *LedgerServiceTestSuite) TestOrderFromManufacturer_Success() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`owner_role = 'manufacturer'`).
		WithArgs(suite.productID).
		WillReturnRows(suite.lockedRow(suite.manufacturerID, models.RoleManufacturer, 100))
	suite.mock.ExpectExec(`SET quantity = quantity - \$1`).
		WithArgs(40, suite.productID, suite.manufacturerID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(`INSERT INTO inventory`).
		WithArgs(pgxmock.AnyArg(), suite.productID, suite.distributorID, models.RoleDistributor, 40).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	err := suite.svc.OrderFromManufacturer(suite.context, suite.distributorID, suite.productID, 40)
	assert.NoError(suite.T(), err)
}

func (suite *LedgerServiceTestSuite) TestOrderFromManufacturer_InsufficientStock() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`owner_role = 'manufacturer'`).
		WithArgs(suite.productID).
		WillReturnRows(suite.lockedRow(suite.manufacturerID, models.RoleManufacturer, 5))
	suite.mock.ExpectRollback()

	err := suite.svc.OrderFromManufacturer(suite.context, suite.distributorID, suite.productID, 40)
	assert.ErrorIs(suite.T(), err, common.ErrInsufficientStock)
}

func (suite *LedgerServiceTestSuite) TestOrderFromManufacturer_NoInventoryRow() {
	// A product the manufacturer never stocked reads as zero available,
	// not as an internal error.
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`owner_role = 'manufacturer'`).
		WithArgs(suite.productID).
		WillReturnError(pgx.ErrNoRows)
	suite.mock.ExpectRollback()

	err := suite.svc.OrderFromManufacturer(suite.context, suite.distributorID, suite.productID, 1)
	assert.ErrorIs(suite.T(), err, common.ErrInsufficientStock)
}

func (suite *LedgerServiceTestSuite) TestOrderFromManufacturer_RejectsNonPositiveQuantity() {
	err := suite.svc.OrderFromManufacturer(suite.context, suite.distributorID, suite.productID, 0)
	assert.ErrorIs(suite.T(), err, common.ErrValidation)

	err = suite.svc.OrderFromManufacturer(suite.context, suite.distributorID, suite.productID, -5)
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestOrderFromDistributor_Success() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT distributor_id FROM distributor_sellers`).
		WithArgs(suite.sellerID).
		WillReturnRows(pgxmock.NewRows([]string{"distributor_id"}).AddRow(suite.distributorID))
	suite.mock.ExpectQuery(`FOR UPDATE`).
		WithArgs(suite.productID, suite.distributorID, models.RoleDistributor).
		WillReturnRows(suite.lockedRow(suite.distributorID, models.RoleDistributor, 25))
	suite.mock.ExpectExec(`SET quantity = quantity - \$1`).
		WithArgs(10, suite.productID, suite.distributorID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(`INSERT INTO inventory`).
		WithArgs(pgxmock.AnyArg(), suite.productID, suite.sellerID, models.RoleSeller, 10).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	err := suite.svc.OrderFromDistributor(suite.context, suite.sellerID, suite.productID, 10)
	assert.NoError(suite.T(), err)
}

func (suite *LedgerServiceTestSuite) TestOrderFromDistributor_Unassigned() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT distributor_id FROM distributor_sellers`).
		WithArgs(suite.sellerID).
		WillReturnError(pgx.ErrNoRows)
	suite.mock.ExpectRollback()

	err := suite.svc.OrderFromDistributor(suite.context, suite.sellerID, suite.productID, 10)
	assert.ErrorIs(suite.T(), err, common.ErrNotAssigned)
}

func (suite *LedgerServiceTestSuite) TestAssignSeller_Success() {
	suite.mock.ExpectQuery(`FROM users`).
		WithArgs(suite.sellerID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "role", "company_name", "created_at"}).
			AddRow(suite.sellerID, "cozyshop", "shop@example.com", "x", models.RoleSeller, "Cozy Shop", time.Now()))
	suite.mock.ExpectExec(`INSERT INTO distributor_sellers`).
		WithArgs(suite.distributorID, suite.sellerID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.svc.AssignSeller(suite.context, suite.distributorID, suite.sellerID)
	assert.NoError(suite.T(), err)
}

func (suite *LedgerServiceTestSuite) TestAssignSeller_WrongRole() {
	suite.mock.ExpectQuery(`FROM users`).
		WithArgs(suite.manufacturerID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "role", "company_name", "created_at"}).
			AddRow(suite.manufacturerID, "mill", "mill@example.com", "x", models.RoleManufacturer, "The Mill", time.Now()))

	err := suite.svc.AssignSeller(suite.context, suite.distributorID, suite.manufacturerID)
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestAssignSeller_UnknownUser() {
	suite.mock.ExpectQuery(`FROM users`).
		WithArgs(suite.sellerID).
		WillReturnError(pgx.ErrNoRows)

	err := suite.svc.AssignSeller(suite.context, suite.distributorID, suite.sellerID)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}
