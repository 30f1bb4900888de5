package utils

import (
	"log"
	"time"
)

var (
	SaoPauloLocation *time.Location
)

func init() {
	var err error
	SaoPauloLocation, err = time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		log.Printf("Erro ao carregar timezone America/Sao_Paulo: %v", err)
		// Fallback para o fuso fixo -3
		SaoPauloLocation = time.FixedZone("BRT", -3*60*60)
	}
}

func NowSaoPaulo() time.Time {
	return time.Now().In(SaoPauloLocation)
}

func ToSaoPaulo(t time.Time) time.Time {
	return t.In(SaoPauloLocation)
}

func FormatSaoPaulo(t time.Time, layout string) string {
	return t.In(SaoPauloLocation).Format(layout)
}

func FormatSaoPauloDefault(t time.Time) string {
	return FormatSaoPaulo(t, "2006-01-02 15:04:05 MST")
}

func ParseSaoPaulo(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, SaoPauloLocation)
	return t, err
}

func UTCToSaoPaulo(utcTime time.Time) time.Time {
	return utcTime.In(SaoPauloLocation)
}

func SaoPauloToUTC(localTime time.Time) time.Time {
	return localTime.UTC()
}
