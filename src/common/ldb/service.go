package ldb

import (
	"context"

	"github.com/hooklift/gowsdl/soap"
)

// BoardService is the subset of the OpenLDBWS operations this module calls.
type BoardService interface {
	GetDepBoardWithDetailsContext(ctx context.Context, request *GetBoardRequestParams) (*StationBoardWithDetailsResponseType, error)
}

type ldbServiceSoap struct {
	client *soap.Client
}

// NewBoardService authenticates every call on client with the given token.
func NewBoardService(client *soap.Client, token string) BoardService {
	client.AddHeader(AccessToken{TokenValue: token})

	return &ldbServiceSoap{
		client: client,
	}
}

func (service *ldbServiceSoap) GetDepBoardWithDetailsContext(ctx context.Context, request *GetBoardRequestParams) (*StationBoardWithDetailsResponseType, error) {
	response := new(StationBoardWithDetailsResponseType)
	err := service.client.CallContext(ctx, actionGetDepBoardWithDetails, request, response)
	if err != nil {
		return nil, err
	}

	return response, nil
}
