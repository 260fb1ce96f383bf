package handler

const (
	jsonKeySuccess = "success"
	jsonKeyError   = "error"
	jsonKeyMessage = "message"
	jsonKeyDrinks  = "drinks"
	jsonKeyDelete  = "delete"

	paramID = "id"

	msgInvalidDrinkID     = "invalid drink id"
	msgTitleRecipeMissing = "drink title and recipe are required"
	msgNothingToUpdate    = "at least one of title or recipe must be provided"
	msgListDrinksFail     = "an error occurred while querying drinks"
	msgCreateDrinkFail    = "an error occurred while creating the drink"
	msgUpdateDrinkFail    = "an error occurred while updating the drink"
	msgDeleteDrinkFail    = "an error occurred while deleting the drink"

	msgContentTypeJSONRequired = "Content-Type must be application/json"
	msgInvalidRequestBody      = "invalid request body"
)
