package ldb

import (
	"encoding/xml"
	"time"
)

const actionGetDepBoardWithDetails = "http://thalesgroup.com/RTTI/2015-05-14/ldb/GetDepBoardWithDetails"

type CRSType string

type LocationNameType string

type TOCName string

type TOCCode string

type PlatformType string

type TimeType string

type ServiceIDType string

type TrainLength uint16

// FilterType selects services coming "from" or going "to" the filter location.
type FilterType string

const (
	FilterTypeTo   FilterType = "to"
	FilterTypeFrom FilterType = "from"
)

type AccessToken struct {
	XMLName xml.Name `xml:"http://thalesgroup.com/RTTI/2013-11-28/Token/types AccessToken"`

	TokenValue string `xml:"TokenValue"`
}

type GetBoardRequestParams struct {
	XMLName xml.Name `xml:"http://thalesgroup.com/RTTI/2017-10-01/ldb/ GetDepBoardWithDetailsRequest"`

	NumRows    uint16      `xml:"numRows,omitempty"`
	Crs        *CRSType    `xml:"crs,omitempty"`
	FilterCrs  *CRSType    `xml:"filterCrs,omitempty"`
	FilterType *FilterType `xml:"filterType,omitempty"`
	TimeOffset int32       `xml:"timeOffset"`
	TimeWindow int32       `xml:"timeWindow,omitempty"`
}

type StationBoardWithDetailsResponseType struct {
	XMLName xml.Name `xml:"GetDepBoardWithDetailsResponse"`

	GetStationBoardResult *StationBoardWithDetails `xml:"GetStationBoardResult,omitempty"`
}

type StationBoardWithDetails struct {
	GeneratedAt          time.Time         `xml:"generatedAt,omitempty"`
	LocationName         *LocationNameType `xml:"locationName,omitempty"`
	Crs                  *CRSType          `xml:"crs,omitempty"`
	FilterLocationName   *LocationNameType `xml:"filterLocationName,omitempty"`
	Filtercrs            *CRSType          `xml:"filtercrs,omitempty"`
	FilterType           *FilterType       `xml:"filterType,omitempty"`
	PlatformAvailable    bool              `xml:"platformAvailable,omitempty"`
	AreServicesAvailable bool              `xml:"areServicesAvailable,omitempty"`

	TrainServices *ArrayOfServiceItemsWithCallingPoints `xml:"trainServices,omitempty"`
}

type ArrayOfServiceItemsWithCallingPoints struct {
	Service []*ServiceItemWithCallingPoints `xml:"service,omitempty"`
}

type ServiceItemWithCallingPoints struct {
	Std          *TimeType      `xml:"std,omitempty"`
	Etd          *TimeType      `xml:"etd,omitempty"`
	Platform     *PlatformType  `xml:"platform,omitempty"`
	Operator     *TOCName       `xml:"operator,omitempty"`
	OperatorCode *TOCCode       `xml:"operatorCode,omitempty"`
	IsCancelled  bool           `xml:"isCancelled,omitempty"`
	Length       *TrainLength   `xml:"length,omitempty"`
	CancelReason *string        `xml:"cancelReason,omitempty"`
	DelayReason  *string        `xml:"delayReason,omitempty"`
	ServiceID    *ServiceIDType `xml:"serviceID,omitempty"`

	Origin      *ArrayOfServiceLocations `xml:"origin,omitempty"`
	Destination *ArrayOfServiceLocations `xml:"destination,omitempty"`

	PreviousCallingPoints   *ArrayOfArrayOfCallingPoints `xml:"previousCallingPoints,omitempty"`
	SubsequentCallingPoints *ArrayOfArrayOfCallingPoints `xml:"subsequentCallingPoints,omitempty"`
}

type ArrayOfServiceLocations struct {
	Location []*ServiceLocation `xml:"location,omitempty"`
}

type ServiceLocation struct {
	LocationName *LocationNameType `xml:"locationName,omitempty"`
	Crs          *CRSType          `xml:"crs,omitempty"`
	Via          string            `xml:"via,omitempty"`
}

type ArrayOfArrayOfCallingPoints struct {
	CallingPointList []*ArrayOfCallingPoints `xml:"callingPointList,omitempty"`
}

type ArrayOfCallingPoints struct {
	CallingPoint []*CallingPoint `xml:"callingPoint,omitempty"`
}

type CallingPoint struct {
	LocationName *LocationNameType `xml:"locationName,omitempty"`
	Crs          *CRSType          `xml:"crs,omitempty"`
	St           *TimeType         `xml:"st,omitempty"`
	Et           *TimeType         `xml:"et,omitempty"`
	At           *TimeType         `xml:"at,omitempty"`
	IsCancelled  bool              `xml:"isCancelled,omitempty"`
	Length       *TrainLength      `xml:"length,omitempty"`
}

// optional copies v so a missing value stays nil.
func optional[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

func deref[T ~string](v *T) string {
	if v == nil {
		return ""
	}
	return string(*v)
}
