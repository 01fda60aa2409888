package board

import "github.com/pitchlucy/lucy/pkg/enum"

type FAQSection string

var (
	FAQSectionGameplay = enum.New(FAQSection("Gameplay"), "Gameplay")
	FAQSectionPitching = enum.New(FAQSection("Pitching rules"), "Pitching rules")
	FAQSectionRewards  = enum.New(FAQSection("Rewards"), "Rewards")
	FAQSectionOthers   = enum.New(FAQSection("Others"), "Others")
)

var FAQSections = []FAQSection{FAQSectionGameplay, FAQSectionPitching, FAQSectionRewards, FAQSectionOthers}

type FAQ struct {
	Question string
	Answer   string
}

var faqs = map[FAQSection][]FAQ{
	FAQSectionGameplay: {
		{
			Question: "What is Pitch Lucy?",
			Answer: "Lucy is an AI fund manager. You pitch her a token and she decides whether the " +
				"treasury buys or sells it.",
		},
		{
			Question: "How do I play?",
			Answer: "Pick a chain and a token, choose buy or sell with an allocation, write your pitch " +
				"and pay the fee in USDC. Lucy answers right after the payment is confirmed.",
		},
		{
			Question: "Which chains are supported?",
			Answer: "ZetaChain is the home chain. Payments made on other supported chains are relayed " +
				"to ZetaChain, and Lucy answers once the payment arrives there.",
		},
	},
	FAQSectionPitching: {
		{
			Question: "How long can a pitch be?",
			Answer:   "Up to 1000 characters.",
		},
		{
			Question: "Which characters are allowed?",
			Answer:   "Letters, numbers, spaces and common punctuation. Emojis and other scripts are rejected.",
		},
		{
			Question: "What is the allocation?",
			Answer:   "The share of the treasury you want Lucy to move, between 1 and 100 with at most two decimals.",
		},
	},
	FAQSectionRewards: {
		{
			Question: "What do I win?",
			Answer:   "A convincing pitch earns a part of the bounty and points on the leaderboard.",
		},
		{
			Question: "How does the bounty grow?",
			Answer:   "Every paid pitch adds its fee to the bounty.",
		},
	},
	FAQSectionOthers: {
		{
			Question: "Why did I pay twice?",
			Answer: "A first transaction may approve the game contract to spend your USDC. It is only " +
				"needed when the current allowance is below the fee.",
		},
		{
			Question: "What if my transaction fails?",
			Answer:   "Nothing is charged by a reverted transaction. Ask for a new price and submit again.",
		},
	},
}

func FAQs(section FAQSection) []FAQ {
	return faqs[section]
}

// Accordion tracks which answers of the shown section are expanded. Switching section collapses
// everything.
type Accordion struct {
	section FAQSection
	open    []bool
}

func NewAccordion() *Accordion {
	a := &Accordion{}
	a.SetSection(FAQSectionGameplay)
	return a
}

func (a *Accordion) Section() FAQSection {
	return a.section
}

func (a *Accordion) SetSection(section FAQSection) {
	a.section = section
	a.open = make([]bool, len(faqs[section]))
}

func (a *Accordion) Toggle(index int) {
	if index < 0 || index >= len(a.open) {
		return
	}

	a.open[index] = !a.open[index]
}

func (a *Accordion) IsOpen(index int) bool {
	return index >= 0 && index < len(a.open) && a.open[index]
}
