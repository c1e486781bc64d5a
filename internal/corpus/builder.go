// Package corpus generates the bank policy documents the embedding index is
// built from. The catalog is synthetic but spans every form category the bank
// serves; numeric limits are kept as plain numbers so downstream checks can
// compare them.
package corpus

import (
	"fmt"
	"strings"

	"formguard/internal/models"
)

type loanSpec struct {
	name           string
	minAmt, maxAmt float64
	minAge, maxAge float64
}

// Catalog returns the full synthetic policy set, one document per form type.
func Catalog() []models.PolicyDocument {
	var policies []models.PolicyDocument

	accountTypes := []string{
		"Savings Account", "Current Account", "Salary Account",
		"Senior Citizen Account", "Minor Account", "NRI Account",
		"Zero Balance Account", "Premium Account", "Student Account",
		"Women's Savings Account",
	}
	for _, acc := range accountTypes {
		minAge := 18.0
		if strings.Contains(acc, "Minor") {
			minAge = 10
		}
		minBalance := 5000.0
		if strings.Contains(acc, "Zero") {
			minBalance = 0
		}
		incomeProof := "Not required"
		if strings.Contains(acc, "Premium") {
			incomeProof = "Required for Premium accounts"
		}
		residentStatus := "Indian Resident"
		if strings.Contains(acc, "NRI") {
			residentStatus = "NRI"
		}
		employment := "Any"
		if strings.Contains(acc, "Salary") {
			employment = "Salaried"
		}
		special := "None"
		if strings.Contains(acc, "Minor") {
			special = "Guardian required"
		}

		policies = append(policies, models.PolicyDocument{
			FormType: acc + " Application",
			Category: models.CategoryAccountOpening,
			Requirements: []models.Requirement{
				models.Number("minimum_age", minAge),
				models.Number("maximum_age", 100),
				models.List("documents_required",
					"PAN Card (mandatory for accounts above ₹50,000)",
					"Aadhaar Card",
					"Passport size photograph (2 copies)",
					"Address proof (Utility bill/Passport/Driving License)",
					"Initial deposit as per account type",
				),
				models.Number("minimum_balance", minBalance),
				models.Scalar("income_proof", incomeProof),
			},
			Eligibility: []models.Requirement{
				models.Scalar("resident_status", residentStatus),
				models.Scalar("employment", employment),
				models.Scalar("special_conditions", special),
			},
		})
	}

	loans := []loanSpec{
		{"Home Loan", 500000, 50000000, 21, 65},
		{"Personal Loan", 50000, 2500000, 21, 60},
		{"Car Loan", 100000, 10000000, 21, 65},
		{"Education Loan", 100000, 10000000, 18, 35},
		{"Gold Loan", 25000, 5000000, 18, 75},
		{"Business Loan", 100000, 50000000, 25, 65},
		{"Loan Against Property", 500000, 50000000, 25, 70},
		{"Two Wheeler Loan", 25000, 200000, 21, 60},
		{"Agricultural Loan", 50000, 10000000, 21, 65},
		{"MSME Loan", 100000, 20000000, 21, 65},
	}
	for _, l := range loans {
		experience := "Minimum 1 year"
		if strings.Contains(l.name, "Business") {
			experience = "Minimum 2 years"
		}
		policies = append(policies, models.PolicyDocument{
			FormType: l.name + " Application",
			Category: models.CategoryLoans,
			Requirements: []models.Requirement{
				models.Number("minimum_age", l.minAge),
				models.Number("maximum_age", l.maxAge),
				models.Number("minimum_amount", l.minAmt),
				models.Number("maximum_amount", l.maxAmt),
				models.List("documents_required",
					"PAN Card (mandatory)",
					"Aadhaar Card",
					"Last 6 months bank statements",
					"Salary slips (last 3 months) or ITR (last 2 years)",
					"Address proof",
					"Passport size photographs (2 copies)",
					"Property documents (for secured loans)",
					"Employment proof",
				),
				models.Scalar("income_requirement", fmt.Sprintf("Minimum monthly income ₹%.0f", l.minAmt/10)),
				models.Scalar("credit_score", "Minimum CIBIL score: 650"),
			},
			Eligibility: []models.Requirement{
				models.List("employment_type", "Salaried", "Self-employed", "Business"),
				models.Scalar("work_experience", experience),
				models.Scalar("existing_loans", "Debt-to-income ratio should not exceed 50%"),
			},
		})
	}

	cardTypes := []string{
		"Basic Credit Card", "Premium Credit Card", "Travel Credit Card",
		"Cashback Credit Card", "Rewards Credit Card", "Business Credit Card",
		"Student Credit Card", "Secured Credit Card",
	}
	for _, card := range cardTypes {
		minAge := 21.0
		if strings.Contains(card, "Student") {
			minAge = 18
		}
		minIncome := 50000.0
		if strings.Contains(card, "Basic") || strings.Contains(card, "Student") {
			minIncome = 15000
		}
		policies = append(policies, models.PolicyDocument{
			FormType: card + " Application",
			Category: models.CategoryCreditCards,
			Requirements: []models.Requirement{
				models.Number("minimum_age", minAge),
				models.Number("maximum_age", 65),
				models.List("documents_required",
					"PAN Card (mandatory)",
					"Aadhaar Card",
					"Address proof",
					"Income proof (Salary slips/ITR)",
					"Passport size photograph",
				),
				models.Number("minimum_income", minIncome),
				models.Scalar("credit_score", "Minimum CIBIL score: 700"),
			},
			Eligibility: []models.Requirement{
				models.Scalar("employment_status", "Salaried/Self-employed"),
				models.Scalar("existing_cards", "Maximum 3 active credit cards"),
			},
		})
	}

	investmentTypes := []string{
		"Fixed Deposit", "Recurring Deposit", "Tax Saving FD",
		"Senior Citizen FD", "Flexi Deposit", "Corporate FD",
		"NRI Fixed Deposit", "Cumulative Deposit",
	}
	for _, inv := range investmentTypes {
		minDeposit := 5000.0
		if strings.Contains(inv, "Recurring") {
			minDeposit = 1000
		}
		benefits := "Standard rates"
		if strings.Contains(inv, "Senior") {
			benefits = "Higher interest for senior citizens"
		}
		policies = append(policies, models.PolicyDocument{
			FormType: inv + " Application",
			Category: models.CategoryInvestments,
			Requirements: []models.Requirement{
				models.Number("minimum_age", 18),
				models.Number("maximum_age", 100),
				models.Number("minimum_deposit", minDeposit),
				models.Number("maximum_deposit", 10000000),
				models.List("documents_required",
					"PAN Card (mandatory for deposits above ₹50,000)",
					"Aadhaar Card",
					"Savings account in the bank",
					"Passport size photograph",
				),
				models.Scalar("tenure", "7 days to 10 years"),
			},
			Eligibility: []models.Requirement{
				models.Scalar("account_holder", "Must have savings account"),
				models.Scalar("special_benefits", benefits),
			},
		})
	}

	kycTypes := []string{
		"KYC Update Form", "Address Change Form", "Mobile Number Update",
		"Email Update Form", "Nomination Form", "Account Closure Form",
		"Cheque Book Request", "Debit Card Application", "ATM PIN Change",
		"Standing Instruction Form",
	}
	for _, kyc := range kycTypes {
		policies = append(policies, models.PolicyDocument{
			FormType: kyc,
			Category: models.CategoryKYCServices,
			Requirements: []models.Requirement{
				models.List("documents_required",
					"Account number",
					"Customer ID",
					"Updated documents (as applicable)",
					"Signature",
				),
				models.Scalar("verification", "OTP verification required"),
				models.Scalar("processing_time", "3-5 working days"),
			},
			Eligibility: []models.Requirement{
				models.Scalar("account_status", "Active account required"),
				models.Scalar("verification", "In-person verification may be required"),
			},
		})
	}

	insuranceTypes := []string{
		"Term Insurance", "Health Insurance", "Vehicle Insurance",
		"Home Insurance", "Travel Insurance", "Personal Accident Insurance",
	}
	for _, ins := range insuranceTypes {
		checkup := "Not required"
		if strings.Contains(ins, "Health") || strings.Contains(ins, "Term") {
			checkup = "Required for coverage above ₹50 lakhs"
		}
		policies = append(policies, models.PolicyDocument{
			FormType: ins + " Application",
			Category: models.CategoryInsurance,
			Requirements: []models.Requirement{
				models.Number("minimum_age", 18),
				models.Number("maximum_age", 65),
				models.List("documents_required",
					"PAN Card",
					"Aadhaar Card",
					"Medical reports (if applicable)",
					"Address proof",
					"Passport size photographs",
					"Nominee details",
				),
				models.Scalar("medical_checkup", checkup),
			},
			Eligibility: []models.Requirement{
				models.Scalar("health_status", "No pre-existing conditions (or declare all)"),
				models.Scalar("coverage_amount", "Based on age and health"),
			},
		})
	}

	digitalServices := []string{
		"Internet Banking Activation", "Mobile Banking Registration",
		"UPI Registration", "NEFT/RTGS Form", "IMPS Registration",
		"E-Statement Request", "Digital Locker Activation",
	}
	for _, svc := range digitalServices {
		policies = append(policies, models.PolicyDocument{
			FormType: svc,
			Category: models.CategoryDigitalServices,
			Requirements: []models.Requirement{
				models.List("documents_required",
					"Account number",
					"Registered mobile number",
					"Debit card details",
					"OTP verification",
				),
				models.Scalar("prerequisites", "Active savings/current account"),
			},
			Eligibility: []models.Requirement{
				models.Scalar("account_status", "Active"),
				models.Scalar("mobile_verification", "Mandatory"),
			},
		})
	}

	nriServices := []string{
		"NRI Account Opening", "Foreign Currency Account", "FCNR Deposit",
		"NRE Account", "NRO Account", "Foreign Remittance Form",
		"Currency Exchange Form",
	}
	for _, svc := range nriServices {
		policies = append(policies, models.PolicyDocument{
			FormType: svc,
			Category: models.CategoryNRIServices,
			Requirements: []models.Requirement{
				models.List("documents_required",
					"Passport (mandatory)",
					"Visa/Work Permit",
					"PAN Card",
					"Aadhaar Card",
					"Overseas address proof",
					"Indian address proof",
				),
				models.Number("minimum_balance", 10000),
			},
			Eligibility: []models.Requirement{
				models.Scalar("resident_status", "Non-Resident Indian"),
				models.Scalar("verification", "Enhanced due diligence required"),
			},
		})
	}

	return policies
}
