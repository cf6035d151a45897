package classify

import (
	"sync"

	"github.com/ppiankov/evadvisor/internal/model"
)

var defaultExamples = []model.TrainingExample{
	{Intent: model.IntentGreeting, Phrase: "hello"},
	{Intent: model.IntentGreeting, Phrase: "hi there"},
	{Intent: model.IntentGreeting, Phrase: "hey"},
	{Intent: model.IntentGreeting, Phrase: "good morning"},
	{Intent: model.IntentGreeting, Phrase: "good afternoon"},
	{Intent: model.IntentGreeting, Phrase: "good evening"},
	{Intent: model.IntentGreeting, Phrase: "howdy"},
	{Intent: model.IntentGreeting, Phrase: "hello, is anyone there?"},
	{Intent: model.IntentGreeting, Phrase: "hi, I have a question"},
	{Intent: model.IntentGreeting, Phrase: "greetings"},
	{Intent: model.IntentGreeting, Phrase: "hey assistant"},

	{Intent: model.IntentRecommendation, Phrase: "which ev should I buy"},
	{Intent: model.IntentRecommendation, Phrase: "recommend an electric car"},
	{Intent: model.IntentRecommendation, Phrase: "what is the best ev for a family"},
	{Intent: model.IntentRecommendation, Phrase: "I want a cheap ev under 40k"},
	{Intent: model.IntentRecommendation, Phrase: "help me choose an electric vehicle"},
	{Intent: model.IntentRecommendation, Phrase: "which car has the longest range"},
	{Intent: model.IntentRecommendation, Phrase: "suggest an affordable electric car"},
	{Intent: model.IntentRecommendation, Phrase: "best budget ev"},
	{Intent: model.IntentRecommendation, Phrase: "is a phev right for me"},
	{Intent: model.IntentRecommendation, Phrase: "small ev for city driving"},
	{Intent: model.IntentRecommendation, Phrase: "looking to buy my first electric car"},
	{Intent: model.IntentRecommendation, Phrase: "what car would you recommend for long range"},

	{Intent: model.IntentPolicy, Phrase: "what should governments do about evs"},
	{Intent: model.IntentPolicy, Phrase: "charging infrastructure policy"},
	{Intent: model.IntentPolicy, Phrase: "government incentives for electric vehicles"},
	{Intent: model.IntentPolicy, Phrase: "should fossil fuel subsidies be removed"},
	{Intent: model.IntentPolicy, Phrase: "battery recycling regulation"},
	{Intent: model.IntentPolicy, Phrase: "how can cities expand public chargers"},
	{Intent: model.IntentPolicy, Phrase: "tax credits for ev buyers"},
	{Intent: model.IntentPolicy, Phrase: "policy recommendations for ev adoption"},
	{Intent: model.IntentPolicy, Phrase: "what regulations help electrification"},
	{Intent: model.IntentPolicy, Phrase: "national charging network planning"},
	{Intent: model.IntentPolicy, Phrase: "should the state subsidize plug-in hybrids"},

	{Intent: model.IntentFleet, Phrase: "we need to upgrade our company fleet"},
	{Intent: model.IntentFleet, Phrase: "replace our delivery vans with evs"},
	{Intent: model.IntentFleet, Phrase: "fleet electrification plan"},
	{Intent: model.IntentFleet, Phrase: "best evs for a corporate fleet"},
	{Intent: model.IntentFleet, Phrase: "how to transition our vehicles to electric"},
	{Intent: model.IntentFleet, Phrase: "total cost of ownership for fleet vehicles"},
	{Intent: model.IntentFleet, Phrase: "uptime of electric trucks"},
	{Intent: model.IntentFleet, Phrase: "our taxi fleet wants to go electric"},
	{Intent: model.IntentFleet, Phrase: "depot charging for company cars"},
	{Intent: model.IntentFleet, Phrase: "managing a fleet of electric vans"},
	{Intent: model.IntentFleet, Phrase: "upgrade the logistics fleet"},

	{Intent: model.IntentSelling, Phrase: "I want to sell my car"},
	{Intent: model.IntentSelling, Phrase: "how much is my used ev worth"},
	{Intent: model.IntentSelling, Phrase: "trade in my gas car for an ev"},
	{Intent: model.IntentSelling, Phrase: "resale value of a tesla"},
	{Intent: model.IntentSelling, Phrase: "where can I sell my electric vehicle"},
	{Intent: model.IntentSelling, Phrase: "selling my model 3"},
	{Intent: model.IntentSelling, Phrase: "do evs hold their value"},
	{Intent: model.IntentSelling, Phrase: "dealership trade-in offer"},
	{Intent: model.IntentSelling, Phrase: "sell my old phev"},
	{Intent: model.IntentSelling, Phrase: "get a quote for my used car"},

	{Intent: model.IntentFarewell, Phrase: "bye"},
	{Intent: model.IntentFarewell, Phrase: "goodbye"},
	{Intent: model.IntentFarewell, Phrase: "thanks, that's all"},
	{Intent: model.IntentFarewell, Phrase: "thank you"},
	{Intent: model.IntentFarewell, Phrase: "see you later"},
	{Intent: model.IntentFarewell, Phrase: "that is everything, bye"},
	{Intent: model.IntentFarewell, Phrase: "talk to you later"},
	{Intent: model.IntentFarewell, Phrase: "have a nice day"},
	{Intent: model.IntentFarewell, Phrase: "cheers, goodbye"},
	{Intent: model.IntentFarewell, Phrase: "thanks for the help"},
}

// DefaultExamples returns a copy of the static training corpus
func DefaultExamples() []model.TrainingExample {
	out := make([]model.TrainingExample, len(defaultExamples))
	copy(out, defaultExamples)
	return out
}

var (
	defaultOnce  sync.Once
	defaultModel *Model
	defaultErr   error
)

// Default returns the process-wide model trained on DefaultExamples with
// DefaultTrainOptions. The fit runs once; later calls share the result.
func Default() (*Model, error) {
	defaultOnce.Do(func() {
		defaultModel, defaultErr = Fit(defaultExamples, DefaultTrainOptions())
	})
	return defaultModel, defaultErr
}
