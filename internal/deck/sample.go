package deck

import "github.com/studiowebux/flashdeck/internal/types"

func forms(he, she, youM, youF, we, they string) types.PersonForms {
	return types.PersonForms{
		{Person: types.PersonHe, Arabic: he},
		{Person: types.PersonShe, Arabic: she},
		{Person: types.PersonYouMasc, Arabic: youM},
		{Person: types.PersonYouFem, Arabic: youF},
		{Person: types.PersonWe, Arabic: we},
		{Person: types.PersonThey, Arabic: they},
	}
}

// SampleCards is the built-in deck used when no deck source is configured
func SampleCards() []types.CardSnapshot {
	return []types.CardSnapshot{
		{
			English:       "to write",
			Arabic:        "كَتَبَ",
			Form:          "Form I",
			Pronunciation: "kataba",
			Conjugations: map[types.TenseKey]types.PersonForms{
				types.TensePast:    forms("كَتَبَ", "كَتَبَتْ", "كَتَبْتَ", "كَتَبْتِ", "كَتَبْنَا", "كَتَبُوا"),
				types.TensePresent: forms("يَكْتُبُ", "تَكْتُبُ", "تَكْتُبُ", "تَكْتُبِينَ", "نَكْتُبُ", "يَكْتُبُونَ"),
			},
			ExampleSentences: map[types.TenseKey][]types.Sentence{
				types.TensePast: {
					{Arabic: "كَتَبَ الطَّالِبُ الدَّرْسَ", English: "The student wrote the lesson", Pronunciation: "kataba aṭ-ṭālibu ad-darsa"},
				},
				types.TensePresent: {
					{Arabic: "تَكْتُبُ البِنْتُ رِسَالَةً", English: "The girl is writing a letter", Pronunciation: "taktubu al-bintu risālatan"},
				},
			},
		},
		{
			English:       "to read",
			Arabic:        "قَرَأَ",
			Form:          "Form I",
			Pronunciation: "qara'a",
			Conjugations: map[types.TenseKey]types.PersonForms{
				types.TensePast:    forms("قَرَأَ", "قَرَأَتْ", "قَرَأْتَ", "قَرَأْتِ", "قَرَأْنَا", "قَرَأُوا"),
				types.TensePresent: forms("يَقْرَأُ", "تَقْرَأُ", "تَقْرَأُ", "تَقْرَئِينَ", "نَقْرَأُ", "يَقْرَؤُونَ"),
			},
		},
		{
			English:       "to study",
			Arabic:        "دَرَسَ",
			Form:          "Form I",
			Pronunciation: "darasa",
			Conjugations: map[types.TenseKey]types.PersonForms{
				types.TensePast:    forms("دَرَسَ", "دَرَسَتْ", "دَرَسْتَ", "دَرَسْتِ", "دَرَسْنَا", "دَرَسُوا"),
				types.TensePresent: forms("يَدْرُسُ", "تَدْرُسُ", "تَدْرُسُ", "تَدْرُسِينَ", "نَدْرُسُ", "يَدْرُسُونَ"),
			},
		},
	}
}
