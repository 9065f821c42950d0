package parser

import (
	"fmt"
	"strconv"
	"strings"

	commandv1 "github.com/muhammadchandra19/exchange/services/order-book/internal/domain/command/v1"
	orderbookv1 "github.com/muhammadchandra19/exchange/services/order-book/internal/domain/orderbook/v1"
	"github.com/muhammadchandra19/exchange/services/order-book/pkg/errors"
)

// Parse lexes one command line into a Command. Tokens are separated by one
// or more spaces; leading and trailing spaces are ignored; the verb, side
// and time-in-force tokens are case-insensitive. Rejections carry an
// ErrorDetails code so the caller can log them without touching stdout.
func Parse(line string) (*commandv1.Command, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil, errors.NewErrorDetails("empty command line", string(errors.InvalidCommandError), "line")
	}

	verb := commandv1.Type(strings.ToUpper(tokens[0]))
	switch verb {
	case commandv1.TypeBuy, commandv1.TypeSell:
		return parseOrder(verb, tokens)
	case commandv1.TypeModify:
		return parseModify(tokens)
	case commandv1.TypeCancel:
		return parseCancel(tokens)
	case commandv1.TypePrint:
		if len(tokens) != 1 {
			return nil, arityError(verb, 1, len(tokens))
		}
		return &commandv1.Command{Type: commandv1.TypePrint}, nil
	default:
		return nil, errors.NewErrorDetails(
			fmt.Sprintf("unknown verb %q", tokens[0]),
			string(errors.UnknownVerbError),
			"verb",
		)
	}
}

// parseOrder handles `BUY <tif> <price> <quantity> <id>` and the SELL twin.
func parseOrder(verb commandv1.Type, tokens []string) (*commandv1.Command, error) {
	if len(tokens) != 5 {
		return nil, arityError(verb, 5, len(tokens))
	}

	tif, ok := orderbookv1.ParseTimeInForce(tokens[1])
	if !ok {
		return nil, errors.NewErrorDetails(
			fmt.Sprintf("unknown time-in-force %q", tokens[1]),
			string(errors.UnknownTimeInForceError),
			"tif",
		)
	}

	price, err := parsePositiveInt(tokens[2], "price", errors.InvalidPriceError)
	if err != nil {
		return nil, err
	}

	quantity, err := parsePositiveInt(tokens[3], "quantity", errors.InvalidQuantityError)
	if err != nil {
		return nil, err
	}

	if tokens[4] == "" {
		return nil, errors.NewErrorDetails("order id cannot be empty", string(errors.EmptyOrderIDError), "orderID")
	}

	side := orderbookv1.SideBuy
	if verb == commandv1.TypeSell {
		side = orderbookv1.SideSell
	}

	return &commandv1.Command{
		Type:     verb,
		Side:     side,
		TIF:      tif,
		Price:    price,
		Quantity: quantity,
		OrderID:  tokens[4],
	}, nil
}

// parseModify handles `MODIFY <id> <side> <price> <quantity>`.
func parseModify(tokens []string) (*commandv1.Command, error) {
	if len(tokens) != 5 {
		return nil, arityError(commandv1.TypeModify, 5, len(tokens))
	}

	side, ok := orderbookv1.ParseSide(tokens[2])
	if !ok {
		return nil, errors.NewErrorDetails(
			fmt.Sprintf("unknown side %q", tokens[2]),
			string(errors.UnknownSideError),
			"side",
		)
	}

	price, err := parsePositiveInt(tokens[3], "price", errors.InvalidPriceError)
	if err != nil {
		return nil, err
	}

	quantity, err := parsePositiveInt(tokens[4], "quantity", errors.InvalidQuantityError)
	if err != nil {
		return nil, err
	}

	return &commandv1.Command{
		Type:     commandv1.TypeModify,
		OrderID:  tokens[1],
		Side:     side,
		Price:    price,
		Quantity: quantity,
	}, nil
}

// parseCancel handles `CANCEL <id>`.
func parseCancel(tokens []string) (*commandv1.Command, error) {
	if len(tokens) != 2 {
		return nil, arityError(commandv1.TypeCancel, 2, len(tokens))
	}

	return &commandv1.Command{
		Type:    commandv1.TypeCancel,
		OrderID: tokens[1],
	}, nil
}

func parsePositiveInt(token, field string, code errors.ErrorCode) (int64, error) {
	value, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, errors.NewErrorDetails(
			fmt.Sprintf("%s must be a number, got %q", field, token),
			string(code),
			field,
		)
	}
	if value <= 0 {
		return 0, errors.NewErrorDetails(
			fmt.Sprintf("%s must be positive, got %d", field, value),
			string(code),
			field,
		)
	}
	return value, nil
}

func arityError(verb commandv1.Type, want, got int) error {
	return errors.NewErrorDetails(
		fmt.Sprintf("%s expects %d tokens, got %d", verb, want, got),
		string(errors.InvalidCommandError),
		"line",
	)
}
