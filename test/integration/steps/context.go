// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/payment-tracker/backend/config"
	"github.com/payment-tracker/backend/internal/application/adapter"
	"github.com/payment-tracker/backend/internal/infra/dependency"
	"github.com/payment-tracker/backend/internal/integration/adapters"
	"github.com/payment-tracker/backend/internal/integration/email"
	"github.com/payment-tracker/backend/internal/integration/persistence"
	"github.com/payment-tracker/backend/internal/integration/persistence/model"
	"github.com/payment-tracker/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"
const testExternalToken = "test-external-api-token"

type testContext struct {
	uri     string
	headers map[string]string
	client  *http.Client

	response *response

	db           *mock.Db
	accessToken  string
	refreshToken string

	currentUserID uuid.UUID
	householdID   uuid.UUID
	cardID        uuid.UUID
	serviceID     uuid.UUID
	templateID    uuid.UUID
	instanceID    uuid.UUID
	lastID        uuid.UUID
}

type response struct {
	status int
	body   any
}

var serverInit sync.Once
var portInit sync.Once
var testDB *mock.Db
var testServerPort int
var testTokenService adapter.TokenService
var testEmailSender *email.MockEmailSender

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("ENV", "test")
		_ = os.Setenv("JWT_SECRET", testJWTSecret)
		_ = os.Setenv("EXTERNAL_API_TOKEN", testExternalToken)
		_ = os.Setenv("EMAIL_WORKER_ENABLED", "false")
		_ = os.Setenv("SCHEDULER_ENABLED", "false")
	})
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:    fmt.Sprintf("http://localhost:%d", testServerPort),
		client: &http.Client{Timeout: 10 * time.Second},
		db: mock.NewDb(map[string]any{
			"users":              &model.UserModel{},
			"refresh_tokens":     &model.RefreshTokenModel{},
			"cards":              &model.CardModel{},
			"services":           &model.ServiceModel{},
			"service_lines":      &model.ServiceLineModel{},
			"scheduled_payments": &model.ScheduledPaymentModel{},
			"payment_instances":  &model.PaymentInstanceModel{},
			"partial_payments":   &model.PartialPaymentModel{},
			"email_queue":        &model.EmailQueueModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Data setup steps
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^a card exists named "([^"]*)" with limit "([^"]*)"$`, test.aCardExistsNamedWithLimit)
	ctx.Given(`^a service exists named "([^"]*)" billed monthly on day (\d+)$`, test.aServiceExistsNamedBilledMonthly)
	ctx.Given(`^a monthly payment template exists for "([^"]*)" of "([^"]*)" due on day (\d+)$`, test.aMonthlyTemplateExists)
	ctx.Given(`^a pending payment instance exists for "([^"]*)" of "([^"]*)" due "([^"]*)"$`, test.aPendingInstanceExists)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.refreshToken = ""
	t.currentUserID = uuid.Nil
	t.householdID = uuid.Nil
	t.cardID = uuid.Nil
	t.serviceID = uuid.Nil
	t.templateID = uuid.Nil
	t.instanceID = uuid.Nil
	t.lastID = uuid.Nil

	if t.db != nil {
		_ = t.db.ClearDB()
	}
	_ = mock.ClearRedis(mock.NewRedis())
	if testEmailSender != nil {
		testEmailSender.Reset()
	}
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		testTokenService = adapters.NewTokenService(testJWTSecret, persistence.NewTokenRepository(testDB.DbConn))
		testEmailSender = email.NewMockEmailSender()

		go func() {
			cfg := config.Load()
			cfg.Server.Port = testServerPort

			injector, err := dependency.NewInjector(cfg, testDB.DbConn, mock.NewRedis(), testEmailSender)
			if err != nil {
				panic(fmt.Sprintf("failed to wire test dependencies: %v", err))
			}

			engine := injector.Router.Setup("test")

			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
				Handler: engine,
			}

			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) aUserExistsWithEmailAndPassword(userEmail, password string) error {
	return t.createUser(userEmail, password, "Test User")
}

func (t *testContext) createUser(userEmail, password, name string) error {
	if t.householdID == uuid.Nil {
		t.householdID = uuid.New()
	}

	userID := uuid.New()
	t.currentUserID = userID

	user := &model.UserModel{
		ID:           userID,
		HouseholdID:  t.householdID,
		Email:        userEmail,
		Name:         name,
		PasswordHash: hashPassword(password),
		AlertEmails:  true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	return t.db.DbConn.Create(user).Error
}

func hashPassword(password string) string {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashedBytes)
}

// iAmLoggedInAs ensures the user exists and issues a real token pair for
// them, so authenticated requests go through the production middleware.
func (t *testContext) iAmLoggedInAs(userEmail string) error {
	t.startServer()

	var userModel model.UserModel
	if err := t.db.DbConn.Where("email = ?", userEmail).First(&userModel).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := t.createUser(userEmail, "SecurePass123!", "Test User"); err != nil {
			return err
		}
		if err := t.db.DbConn.Where("email = ?", userEmail).First(&userModel).Error; err != nil {
			return err
		}
	}

	t.currentUserID = userModel.ID
	t.householdID = userModel.HouseholdID

	pair, err := testTokenService.GenerateTokenPair(context.Background(), userModel.ID, userModel.HouseholdID, userEmail)
	if err != nil {
		return fmt.Errorf("failed to generate token pair: %w", err)
	}

	t.accessToken = pair.AccessToken
	t.refreshToken = pair.RefreshToken
	return nil
}

func (t *testContext) aCardExistsNamedWithLimit(name, limit string) error {
	if t.householdID == uuid.Nil {
		t.householdID = uuid.New()
	}

	limitAmount, err := decimal.NewFromString(limit)
	if err != nil {
		return fmt.Errorf("invalid limit %q: %w", limit, err)
	}

	cardID := uuid.New()
	t.cardID = cardID

	now := time.Now().UTC()
	cardModel := &model.CardModel{
		ID:              cardID,
		HouseholdID:     t.householdID,
		Name:            name,
		BankName:        "Test Bank",
		Owner:           "Test User",
		CardType:        "physical",
		ClosingDay:      10,
		DueDay:          20,
		CreditLimit:     limitAmount,
		AvailableCredit: limitAmount,
		CurrentBalance:  decimal.Zero,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	return t.db.DbConn.Create(cardModel).Error
}

func (t *testContext) aServiceExistsNamedBilledMonthly(name string, cycleDay int) error {
	if t.householdID == uuid.Nil {
		t.householdID = uuid.New()
	}

	serviceID := uuid.New()
	t.serviceID = serviceID

	dueDay := cycleDay + 10
	now := time.Now().UTC()
	serviceModel := &model.ServiceModel{
		ID:              serviceID,
		HouseholdID:     t.householdID,
		Name:            name,
		Type:            "billing_cycle",
		Amount:          decimal.Zero,
		PaymentMethod:   "transfer",
		BillingCycleDay: &cycleDay,
		BillingDueDay:   &dueDay,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	return t.db.DbConn.Create(serviceModel).Error
}

func (t *testContext) aMonthlyTemplateExists(description, amount string, dueDay int) error {
	if t.householdID == uuid.Nil {
		t.householdID = uuid.New()
	}

	templateAmount, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	templateID := uuid.New()
	t.templateID = templateID

	now := time.Now().UTC()
	templateModel := &model.ScheduledPaymentModel{
		ID:          templateID,
		HouseholdID: t.householdID,
		Description: description,
		PaymentType: "service_payment",
		Frequency:   "monthly",
		Amount:      templateAmount,
		IsActive:    true,
		DueDay:      &dueDay,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return t.db.DbConn.Create(templateModel).Error
}

func (t *testContext) aPendingInstanceExists(description, amount, dueDate string) error {
	if t.householdID == uuid.Nil {
		t.householdID = uuid.New()
	}

	instanceAmount, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	due, err := time.Parse("2006-01-02", dueDate)
	if err != nil {
		return fmt.Errorf("invalid due date %q: %w", dueDate, err)
	}

	instanceID := uuid.New()
	t.instanceID = instanceID

	now := time.Now().UTC()
	instanceModel := &model.PaymentInstanceModel{
		ID:          instanceID,
		HouseholdID: t.householdID,
		Description: description,
		DueDate:     due,
		Amount:      instanceAmount,
		Status:      "pending",
		PaidAmount:  decimal.Zero,
		PaymentType: "service_payment",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return t.db.DbConn.Create(instanceModel).Error
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	path = t.replacePlaceholders(path)
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path = t.replacePlaceholders(path)

	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{external_token}}", testExternalToken)
	content = strings.ReplaceAll(content, "{{card_id}}", t.cardID.String())
	content = strings.ReplaceAll(content, "{{service_id}}", t.serviceID.String())
	content = strings.ReplaceAll(content, "{{template_id}}", t.templateID.String())
	content = strings.ReplaceAll(content, "{{instance_id}}", t.instanceID.String())
	content = strings.ReplaceAll(content, "{{last_id}}", t.lastID.String())
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	url := t.uri + path

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status: resp.StatusCode,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	if idStr, ok := responseBody["id"].(string); ok {
		if id, err := uuid.Parse(idStr); err == nil {
			t.lastID = id
		}
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	result := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface())
	if result.Error != nil {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(content.Content), &criteria); err != nil {
		return err
	}

	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
