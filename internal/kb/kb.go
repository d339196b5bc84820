// Package kb holds the built-in ADGM knowledge base: the collection names the
// retrieval pipeline searches over and the seed records loaded into them at
// startup.
package kb

// Collection names. These are the logical corpora of the knowledge base; each
// maps to one vector index.
const (
	Regulations     = "adgm_regulations"
	Templates       = "document_templates"
	ComplianceRules = "compliance_rules"
	Precedents      = "legal_precedents"
)

// Collections lists every knowledge base collection in load order.
func Collections() []string {
	return []string{Regulations, Templates, ComplianceRules, Precedents}
}

// Record is one seed document before embedding.
type Record struct {
	ID         string
	Collection string
	Content    string
	Metadata   map[string]string
}

// Seed returns the built-in ADGM corpus.
func Seed() []Record {
	return []Record{
		{
			ID:         "reg_companies_2020",
			Collection: Regulations,
			Content: `ADGM Companies Regulations 2020 - Key Requirements:
Article 6: Jurisdiction - All companies must explicitly specify Abu Dhabi Global Market (ADGM) as their jurisdiction. References to UAE Federal Courts, Dubai Courts, or other jurisdictions are non-compliant.
Article 12: Share Capital - Articles of Association must include clear statement of authorized share capital in specific currency (USD, AED, GBP, EUR).
Article 15: Directors - Minimum one director required who must be a natural person of at least 18 years of age. Body corporate directors are permitted as additional directors.
Article 20: Resolutions - All shareholder and board resolutions require proper signatures, dates, and clear resolution language using "RESOLVED" or "IT WAS RESOLVED".
Article 25: Registered Office - Every company must maintain a registered office within ADGM jurisdiction at all times.
Article 30: Company Name - Must include appropriate suffix (Limited, Ltd, LLC, etc.) and be unique within ADGM registry.`,
			Metadata: map[string]string{
				"type":   "regulation",
				"source": "ADGM Companies Regulations 2020",
				"year":   "2020",
			},
		},
		{
			ID:         "reg_employment_2019",
			Collection: Regulations,
			Content: `ADGM Employment Regulations 2019:
Article 5: Employment Contracts - All employment contracts must comply with ADGM labor laws and include: job title, duties, salary, working hours, leave entitlements, notice periods.
Article 10: Notice Periods - Minimum notice periods: 1 week for employment less than 3 months, 2 weeks for 3-12 months, 4 weeks for over 12 months.
Article 15: Working Hours - Maximum 48 hours per week unless opt-out agreement signed.
Article 20: Annual Leave - Minimum 20 days annual leave plus ADGM public holidays.`,
			Metadata: map[string]string{
				"type":   "regulation",
				"source": "ADGM Employment Regulations 2019",
				"year":   "2019",
			},
		},
		{
			ID:         "reg_data_protection_2021",
			Collection: Regulations,
			Content: `ADGM Data Protection Regulations 2021:
Article 8: Data Processing - Requires lawful basis for processing personal data.
Article 15: Data Subject Rights - Rights include access, rectification, erasure, portability.
Article 25: Data Breach Notification - 72-hour notification requirement for breaches.
Article 30: Data Protection Officer - Required for certain organizations.`,
			Metadata: map[string]string{
				"type":   "regulation",
				"source": "ADGM Data Protection Regulations 2021",
				"year":   "2021",
			},
		},
		{
			ID:         "template_aoa",
			Collection: Templates,
			Content: `Articles of Association Template Requirements:
1. Company Name and Suffix - Must include Ltd, Limited, LLC, or Inc.
2. Registered Office - Full ADGM address required
3. Objects Clause - Detailed business activities
4. Share Capital - Authorized and issued amounts
5. Share Classes - Rights and restrictions
6. Directors - Powers, appointment, removal procedures
7. Shareholders - Rights, meetings, voting procedures
8. Dividends - Declaration and payment procedures
9. Accounts - Financial year, audit requirements
10. Winding Up - Procedures for dissolution
11. Governing Law - ADGM laws and regulations
12. Dispute Resolution - ADGM Courts jurisdiction`,
			Metadata: map[string]string{
				"type":          "template",
				"document_type": "articles_of_association",
			},
		},
		{
			ID:         "template_board_resolution",
			Collection: Templates,
			Content: `Board Resolution Template Requirements:
1. Company Name and Registration Number
2. Date, Time, and Venue of Meeting
3. Directors Present and Absent
4. Quorum Confirmation
5. Appointment of Chairperson
6. Clear Resolution Language ("IT WAS RESOLVED")
7. Specific Resolutions with Details
8. Voting Record (if applicable)
9. Directors' Signatures
10. Secretary Certification (if applicable)`,
			Metadata: map[string]string{
				"type":          "template",
				"document_type": "board_resolution",
			},
		},
		{
			ID:         "template_shareholder_resolution",
			Collection: Templates,
			Content: `Shareholder Resolution Template Requirements:
1. Resolution of Incorporating Shareholders header
2. Company Name (proposed)
3. Date of Resolution
4. List of Shareholders with shareholdings
5. Appointment of Directors
6. Appointment of Authorized Signatories
7. Share Capital Structure
8. Adoption of Articles
9. Registered Office Address
10. All Shareholders' Signatures with dates`,
			Metadata: map[string]string{
				"type":          "template",
				"document_type": "shareholder_resolution",
			},
		},
		{
			ID:         "rule_jurisdiction",
			Collection: ComplianceRules,
			Content: `Jurisdiction Compliance Rules:
- MUST reference "Abu Dhabi Global Market" or "ADGM"
- MUST NOT reference "UAE Federal Courts", "Dubai Courts", "DIFC"
- Governing law must be "ADGM Laws and Regulations"
- Dispute resolution through "ADGM Courts"
- Arbitration rules, if any, should reference "ADGM Arbitration Centre"`,
			Metadata: map[string]string{
				"type":     "compliance_rule",
				"category": "jurisdiction",
			},
		},
		{
			ID:         "rule_language",
			Collection: ComplianceRules,
			Content: `Legal Language Requirements:
Binding Terms Required: shall, must, will, is required to, agrees to
Weak Language to Avoid: may, might, could, possibly, perhaps, should consider
Resolution Language: IT WAS RESOLVED, RESOLVED THAT, BE IT RESOLVED
Obligation Language: undertakes, covenants, warrants, represents`,
			Metadata: map[string]string{
				"type":     "compliance_rule",
				"category": "language",
			},
		},
		{
			ID:         "rule_signatures",
			Collection: ComplianceRules,
			Content: `Signature Requirements:
- All documents must have signature sections
- Include full name fields for signatories
- Date fields required for each signature
- Witness requirements for certain documents
- Electronic signatures acceptable with proper authentication`,
			Metadata: map[string]string{
				"type":     "compliance_rule",
				"category": "signatures",
			},
		},
	}
}
