package ws

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"

	"economic-wars/internal/game"
)

// Inbound message types.
const (
	inCreateRoom = "create-room"
	inJoinRoom   = "join-room"
	inStartGame  = "start-game"
	inResumeGame = "resume-game"
	inGameAction = "game-action"
	inKick       = "kick-player"
	inChat       = "chat"
	inLeaveRoom  = "leave-room"
)

var (
	errMalformed     = errors.New("Malformed message.")
	errUnknownType   = errors.New("Unknown message type.")
	errUnknownAction = errors.New("Unknown action.")
	errRateLimited   = errors.New("Too many messages. Slow down.")
)

// envelope is one inbound frame. Data stays loosely typed until the type
// is known.
type envelope struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

type startGame struct {
	MapID string `json:"mapId"`
}

type resumeGame struct {
	Code string `json:"code"`
}

type kickPlayer struct {
	PlayerID string `json:"playerId"`
}

type chatMessage struct {
	Text    string `json:"text"`
	Message string `json:"message"`
}

// actionPayload is the union of every action's fields. fromPlayerId is
// ignored: the sender is taken from the connection.
type actionPayload struct {
	ActionType string     `json:"actionType"`
	Action     string     `json:"action"`
	TargetID   string     `json:"targetId"`
	PartnerID  string     `json:"partnerId"`
	Offer      game.Offer `json:"offer"`
	TradeID    string     `json:"tradeId"`
	SpaceID    *int       `json:"spaceId"`
}

// stringToIntHookFunc accepts numeric fields sent as strings.
func stringToIntHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Kind, to reflect.Kind, data interface{}) (interface{}, error) {
		if from == reflect.String && to == reflect.Int {
			return strconv.Atoi(data.(string))
		}
		return data, nil
	}
}

func decode(input map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: stringToIntHookFunc(),
		Result:     out,
		TagName:    "json",
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}
	return nil
}

// decodeAction turns a game-action payload into an engine action.
func decodeAction(data map[string]any) (game.Action, error) {
	var p actionPayload
	if err := decode(data, &p); err != nil {
		return nil, err
	}
	space := func(build func(int) game.Action) (game.Action, error) {
		if p.SpaceID == nil {
			return nil, fmt.Errorf("%w: spaceId is required", errMalformed)
		}
		return build(*p.SpaceID), nil
	}

	switch game.ActionType(p.ActionType) {
	case game.ActionRollDice:
		return game.RollDice{}, nil
	case game.ActionPayBail:
		return game.PayBail{}, nil
	case game.ActionUseImmunity:
		return game.UseImmunity{}, nil
	case game.ActionBuyProperty:
		return game.BuyProperty{}, nil
	case game.ActionDeclinePurchase:
		return game.DeclinePurchase{}, nil
	case game.ActionEndTurn:
		return game.EndTurn{}, nil
	case game.ActionInfluence:
		return game.UseInfluence{Kind: game.InfluenceKind(p.Action), TargetID: p.TargetID}, nil
	case game.ActionProposeTrade:
		return game.ProposeTrade{PartnerID: p.PartnerID, Offer: p.Offer}, nil
	case game.ActionAcceptTrade:
		return game.AcceptTrade{TradeID: p.TradeID}, nil
	case game.ActionRejectTrade:
		return game.RejectTrade{TradeID: p.TradeID}, nil
	case game.ActionCancelTrade:
		return game.CancelTrade{TradeID: p.TradeID}, nil
	case game.ActionDevelop:
		return space(func(id int) game.Action { return game.Develop{SpaceID: id} })
	case game.ActionFreeUpgrade:
		return space(func(id int) game.Action { return game.FreeUpgrade{SpaceID: id} })
	case game.ActionMortgage:
		return space(func(id int) game.Action { return game.Mortgage{SpaceID: id} })
	case game.ActionUnmortgage:
		return space(func(id int) game.Action { return game.Unmortgage{SpaceID: id} })
	case game.ActionSellDevelopment:
		return space(func(id int) game.Action { return game.SellDevelopment{SpaceID: id} })
	case game.ActionSellProperty:
		return space(func(id int) game.Action { return game.SellProperty{SpaceID: id} })
	}
	return nil, errUnknownAction
}
