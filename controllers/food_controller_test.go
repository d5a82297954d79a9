package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/karmic/meals-api/models"
	"github.com/karmic/meals-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFoodItem(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		expectedError  string
		expectedField  string
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name: "Successfully add food item with numeric price",
			requestBody: map[string]interface{}{
				"name": "Masala Dosa", "session": "morning", "day": "Monday", "price": 45.5,
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				assert.Equal(t, "Food item added successfully!", response["message"])
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "Masala Dosa", data["name"])
				assert.Equal(t, "45.50", data["price"])
				assert.NotZero(t, data["id"])
			},
		},
		{
			name:           "Successfully add food item with string price",
			requestBody:    `{"name":"Tea","session":"Evening","day":"Monday","price":"12.50"}`,
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "evening", data["session"])
				assert.Equal(t, "12.50", data["price"])
			},
		},
		{
			name: "Fail with invalid session",
			requestBody: map[string]interface{}{
				"name": "Tea", "session": "midnight", "day": "Monday", "price": 10,
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
			expectedField:  "session",
		},
		{
			name: "Fail with negative price",
			requestBody: map[string]interface{}{
				"name": "Tea", "session": "evening", "day": "Monday", "price": -1,
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
			expectedField:  "price",
		},
		{
			name: "Fail with missing price",
			requestBody: map[string]interface{}{
				"name": "Tea", "session": "evening", "day": "Monday",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
			expectedField:  "price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := setupTestRouter(t, nil)

			w := performRequest(router, "POST", "/food/add", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			response := decodeResponse(t, w)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, errorCode(response))
				assert.Contains(t, errorDetails(response), tt.expectedField)
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, response)
			}
		})
	}
}

func TestListFoodItems(t *testing.T) {
	router, db := setupTestRouter(t, nil)

	w := performRequest(router, "GET", "/food/list", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeResponse(t, w)["data"])

	testutil.CreateFoodItem(t, db, "Poha", models.SessionMorning, "Monday", "20.00")
	testutil.CreateFoodItem(t, db, "Tea", models.SessionEvening, "Tuesday", "10.00")

	w = performRequest(router, "GET", "/food/list", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	items := decodeResponse(t, w)["data"].([]interface{})
	require.Len(t, items, 2)
	assert.Equal(t, "Poha", items[0].(map[string]interface{})["name"])
	assert.Equal(t, "Tea", items[1].(map[string]interface{})["name"])
}

func TestGetFoodItem(t *testing.T) {
	router, db := setupTestRouter(t, nil)
	item := testutil.CreateFoodItem(t, db, "Poha", models.SessionMorning, "Monday", "20.00")

	w := performRequest(router, "GET", fmt.Sprintf("/food/%d", item.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Poha", data["name"])
	assert.Equal(t, "20.00", data["price"])

	w = performRequest(router, "GET", "/food/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "FOOD_ITEM_NOT_FOUND", errorCode(decodeResponse(t, w)))

	w = performRequest(router, "GET", "/food/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", errorCode(decodeResponse(t, w)))
}

func TestEditFoodItem(t *testing.T) {
	router, db := setupTestRouter(t, nil)
	item := testutil.CreateFoodItem(t, db, "Poha", models.SessionMorning, "Monday", "20.00")
	path := fmt.Sprintf("/food/edit/%d", item.ID)

	w := performRequest(router, "PUT", path, map[string]interface{}{"price": "25.00"})
	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	assert.Equal(t, "Food item updated successfully", response["message"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Poha", data["name"])
	assert.Equal(t, "25.00", data["price"])

	w = performRequest(router, "PUT", path, map[string]interface{}{"session": "lunch"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorDetails(decodeResponse(t, w)), "session")

	w = performRequest(router, "PUT", "/food/edit/999", map[string]interface{}{"name": "Ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "FOOD_ITEM_NOT_FOUND", errorCode(decodeResponse(t, w)))
}

func TestDeleteFoodItem(t *testing.T) {
	router, db := setupTestRouter(t, nil)
	item := testutil.CreateFoodItem(t, db, "Poha", models.SessionMorning, "Monday", "20.00")
	testutil.CreateOrder(t, db, "Asha", "Monday", map[uint]int{item.ID: 3})

	w := performRequest(router, "DELETE", fmt.Sprintf("/food/delete/%d", item.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Food item deleted successfully", decodeResponse(t, w)["message"])
	assert.Equal(t, int64(0), testutil.CountRows(t, db, &models.OrderItem{}))

	w = performRequest(router, "DELETE", fmt.Sprintf("/food/delete/%d", item.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(router, "DELETE", "/food/delete/0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMenu(t *testing.T) {
	router, db := setupTestRouter(t, nil)
	testutil.CreateFoodItem(t, db, "Poha", models.SessionMorning, "wednesday", "20.00")
	testutil.CreateFoodItem(t, db, "Pasta", models.SessionEvening, "Thursday", "90.00")
	testutil.CreateFoodItem(t, db, "Biryani", models.SessionAfternoon, "Saturday", "120.00")

	w := performRequest(router, "GET", "/food/menu", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Wednesday", data["today"])
	assert.Equal(t, "Thursday", data["tomorrow"])

	todayMenu := data["today_menu"].([]interface{})
	require.Len(t, todayMenu, 1)
	assert.Equal(t, "Poha", todayMenu[0].(map[string]interface{})["name"])

	tomorrowMenu := data["tomorrow_menu"].([]interface{})
	require.Len(t, tomorrowMenu, 1)
	assert.Equal(t, "Pasta", tomorrowMenu[0].(map[string]interface{})["name"])
}
