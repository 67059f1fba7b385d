package calc

import "math"

// OBBBParams are the caps of the below-the-line tips, overtime, car-loan
// interest and senior deductions.
type OBBBParams struct {
	TipsCap          float64
	OvertimeCap      float64
	OvertimeCapJoint float64
	CarLoanCap       float64
	SeniorAmount     float64
	SeniorAge        int
}

type OBBBInput struct {
	Tips            float64
	Overtime        float64
	CarLoanInterest float64
	VehicleNew      bool
	VehicleDomestic bool
	Joint           bool
	// Seniors is the number of filers on the return at or above SeniorAge.
	Seniors int
}

type OBBBResult struct {
	Tips     float64
	Overtime float64
	CarLoan  float64
	Senior   float64
	Total    float64
}

func OBBBDeductions(in OBBBInput, p OBBBParams) OBBBResult {
	var res OBBBResult
	res.Tips = math.Min(clampZero(in.Tips), p.TipsCap)

	overtimeCap := p.OvertimeCap
	if in.Joint {
		overtimeCap = p.OvertimeCapJoint
	}
	res.Overtime = math.Min(clampZero(in.Overtime), overtimeCap)

	if in.VehicleNew && in.VehicleDomestic {
		res.CarLoan = math.Min(clampZero(in.CarLoanInterest), p.CarLoanCap)
	}

	seniors := in.Seniors
	maxSeniors := 1
	if in.Joint {
		maxSeniors = 2
	}
	if seniors > maxSeniors {
		seniors = maxSeniors
	}
	if seniors < 0 {
		seniors = 0
	}
	res.Senior = float64(seniors) * p.SeniorAmount

	res.Total = RoundCents(res.Tips + res.Overtime + res.CarLoan + res.Senior)
	return res
}
