package model

// Form1040Record is TaxTotals laid out by Form 1040 line number.
type Form1040Record struct {
	FilingStatus FilingStatus `json:"filing_status"`

	Line1a  float64 `json:"line_1a"`
	Line1z  float64 `json:"line_1z"`
	Line2a  float64 `json:"line_2a"`
	Line2b  float64 `json:"line_2b"`
	Line3a  float64 `json:"line_3a"`
	Line3b  float64 `json:"line_3b"`
	Line4a  float64 `json:"line_4a"`
	Line4b  float64 `json:"line_4b"`
	Line5a  float64 `json:"line_5a"`
	Line5b  float64 `json:"line_5b"`
	Line6a  float64 `json:"line_6a"`
	Line6b  float64 `json:"line_6b"`
	Line7   float64 `json:"line_7"`
	Line8   float64 `json:"line_8"`
	Line9   float64 `json:"line_9"`
	Line10  float64 `json:"line_10"`
	Line11  float64 `json:"line_11"`
	Line12  float64 `json:"line_12"`
	Line13b float64 `json:"line_13b"`
	Line14  float64 `json:"line_14"`
	Line15  float64 `json:"line_15"`
	Line16  float64 `json:"line_16"`
	Line17  float64 `json:"line_17"`
	Line18  float64 `json:"line_18"`
	Line19  float64 `json:"line_19"`
	Line20  float64 `json:"line_20"`
	Line21  float64 `json:"line_21"`
	Line22  float64 `json:"line_22"`
	Line23  float64 `json:"line_23"`
	Line24  float64 `json:"line_24"`
	Line25a float64 `json:"line_25a"`
	Line25b float64 `json:"line_25b"`
	Line25d float64 `json:"line_25d"`
	Line26  float64 `json:"line_26"`
	Line28  float64 `json:"line_28"`
	Line32  float64 `json:"line_32"`
	Line33  float64 `json:"line_33"`
	Line34  float64 `json:"line_34"`
	Line35a float64 `json:"line_35a"`
	Line37  float64 `json:"line_37"`
}
