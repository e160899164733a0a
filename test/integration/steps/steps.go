package steps

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/transfer-desk/backend/internal/domain/entity"
	"github.com/transfer-desk/backend/internal/domain/valueobject"
	"github.com/transfer-desk/backend/internal/integration/adapters"
	"github.com/transfer-desk/backend/internal/integration/persistence/model"
)

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.uri + "/health")
	if err != nil {
		return fmt.Errorf("test server is not running: %w", err)
	}
	defer resp.Body.Close()
	return nil
}

func (t *testContext) todayIs(date string) error {
	d, err := valueobject.ParseCalendarDate(date)
	if err != nil {
		return err
	}
	t.timeMock.SetCurrentDate(d)
	return nil
}

func (t *testContext) anAdminExistsWithPassword(email, password string) error {
	return t.createUser(email, password, true)
}

func (t *testContext) anOperatorExistsWithPassword(email, password string) error {
	return t.createUser(email, password, false)
}

func (t *testContext) createUser(email, password string, isAdmin bool) error {
	hash, err := adapters.NewPasswordService(t.cfg.Business.MinPasswordLength).HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user := &model.UserModel{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := t.db.DbConn.Create(user).Error; err != nil {
		return err
	}

	t.userIDs[email] = user.ID
	return nil
}

func (t *testContext) theUserIsBlocked(email string) error {
	return t.db.DbConn.Model(&model.UserModel{}).
		Where("email = ?", email).
		Update("blocked", true).Error
}

func (t *testContext) iAmLoggedInAsWithPassword(email, password string) error {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/login", payload); err != nil {
		return err
	}
	if t.response.status != http.StatusOK {
		return fmt.Errorf("login failed with status %d: %s", t.response.status, string(t.response.raw))
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("login response is not a JSON object: %s", string(t.response.raw))
	}
	t.accessToken, _ = body["access_token"].(string)
	t.refreshToken, _ = body["refresh_token"].(string)
	if t.accessToken == "" {
		return errors.New("login response carries no access token")
	}
	return nil
}

func (t *testContext) aClientExists(name string) error {
	now := time.Now().UTC()
	client := &model.ClientModel{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.db.DbConn.Create(client).Error; err != nil {
		return err
	}

	t.clientIDs[name] = client.ID
	return nil
}

func (t *testContext) theClientWasSentToPayOn(name, sent, toPay, date string) error {
	amountSent, err := decimal.NewFromString(sent)
	if err != nil {
		return err
	}
	amountToPay, err := decimal.NewFromString(toPay)
	if err != nil {
		return err
	}
	return t.insertTransaction(name, date, amountSent, amountToPay, decimal.Zero, nil)
}

func (t *testContext) theClientPaidOn(name, paid, date string) error {
	amountPaid, err := decimal.NewFromString(paid)
	if err != nil {
		return err
	}
	method := string(entity.PaymentMethodCash)
	return t.insertTransaction(name, date, decimal.Zero, decimal.Zero, amountPaid, &method)
}

func (t *testContext) insertTransaction(
	name, date string,
	sent, toPay, paid decimal.Decimal,
	method *string,
) error {
	clientID, ok := t.clientIDs[name]
	if !ok {
		return fmt.Errorf("client '%s' was not created in this scenario", name)
	}
	d, err := valueobject.ParseCalendarDate(date)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	txn := &model.TransactionModel{
		ID:            uuid.New(),
		ClientID:      clientID,
		Date:          d,
		AmountSent:    sent,
		AmountToPay:   toPay,
		AmountPaid:    paid,
		PaymentMethod: method,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := t.db.DbConn.Create(txn).Error; err != nil {
		return err
	}

	t.lastTransactionID = txn.ID
	return nil
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
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

// replacePlaceholders substitutes {{access_token}}, {{refresh_token}},
// {{transaction_id}}, {{client:<name>}} and {{user:<email>}}.
func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{transaction_id}}", t.lastTransactionID.String())
	for name, id := range t.clientIDs {
		content = strings.ReplaceAll(content, "{{client:"+name+"}}", id.String())
	}
	for email, id := range t.userIDs {
		content = strings.ReplaceAll(content, "{{user:"+email+"}}", id.String())
	}
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, body)
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

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status:  resp.StatusCode,
		headers: resp.Header,
		raw:     raw,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(raw, &responseBody); err != nil {
		t.response.body = string(raw)
		return nil
	}
	t.response.body = responseBody
	t.captureIDs(responseBody)

	return nil
}

// captureIDs remembers identifiers of resources created through the API.
func (t *testContext) captureIDs(body map[string]any) {
	if txn, ok := body["transaction"].(map[string]any); ok {
		body = txn
	}

	idStr, ok := body["id"].(string)
	if !ok {
		return
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return
	}

	switch {
	case body["client_id"] != nil:
		t.lastTransactionID = id
	case body["status"] != nil && body["name"] != nil:
		t.clientIDs[body["name"].(string)] = id
	case body["email"] != nil:
		t.userIDs[body["email"].(string)] = id
	}
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %s)", expectedStatus, t.response.status, string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %s", string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	switch v := getFieldValue(body, field).(type) {
	case []any:
		if len(v) != count {
			return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(v))
		}
	case map[string]any:
		if len(v) != count {
			return fmt.Errorf("field '%s' expected %d entries, got %d", field, count, len(v))
		}
	default:
		return fmt.Errorf("field '%s' is not a collection: %v", field, v)
	}
	return nil
}

func (t *testContext) theResponseHeaderShouldBe(header, expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if actual := t.response.headers.Get(header); actual != expected {
		return fmt.Errorf("header '%s' expected '%s', got '%s'", header, expected, actual)
	}
	return nil
}

func (t *testContext) theResponseHeaderShouldContain(header, expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if actual := t.response.headers.Get(header); !strings.Contains(actual, expected) {
		return fmt.Errorf("header '%s' expected to contain '%s', got '%s'", header, expected, actual)
	}
	return nil
}

func (t *testContext) theResponseBodyShouldContainTheText(text string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if !strings.Contains(string(t.response.raw), text) {
		return fmt.Errorf("response body does not contain '%s': %s", text, string(t.response.raw))
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	count, err := t.db.Count(table, nil)
	if err != nil {
		return err
	}
	if count != int64(quantity) {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	count, err := t.db.Count(table, criteria)
	if err != nil {
		return err
	}
	if count != int64(quantity) {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) theSummaryCacheShouldHoldEntries(quantity int) error {
	count, err := t.redis.CountKeys(t.cfg.Redis.KeyPrefix)
	if err != nil {
		return err
	}
	if count != quantity {
		return fmt.Errorf("expected %d cached summaries, got %d", quantity, count)
	}
	return nil
}

func (t *testContext) jsonBody() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %s", string(t.response.raw))
	}
	return body, nil
}

// getFieldValue walks a dot separated path; numeric segments index arrays.
func getFieldValue(object any, dotSeparatedField string) any {
	var field = object
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}
	return field
}
