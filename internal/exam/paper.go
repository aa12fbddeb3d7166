package exam

import "github.com/academy-uk/placement-exam/internal/model"

// MinimumWritingWords is the word-count threshold checked by the writing
// feedback; the section itself is never scored numerically.
const MinimumWritingWords = 150

const walkingPassage = `Walking is one of the most accessible forms of exercise available to almost
everyone. Health experts recommend at least 30 minutes of brisk walking a day,
which strengthens the heart and improves blood circulation. Unlike running or
high-impact sports, walking is gentle on the joints and far less likely to
cause injuries, which makes it suitable for people of all ages. Beyond its
physical benefits, a daily walk helps to manage weight and has a remarkable
effect on the mind: it helps people to think clearly and to relieve stress
after a demanding day. Walking outdoors also reconnects us with the natural
world, something city life rarely offers. In short, walking is a small change
with huge health benefits.`

// Paper returns the candidate-facing exam paper. The answer key never
// appears here.
func Paper(durationMinutes int) model.ExamPaper {
	return model.ExamPaper{
		Title:           "English Proficiency Placement Exam",
		DurationMinutes: durationMinutes,
		Sections: []model.PaperSection{
			{
				ID:    "listening",
				Title: "Section 1: Listening",
				Instructions: "Listen to the recording of a telephone call to a dental " +
					"clinic and answer questions 1-5. Write no more than three words " +
					"or a number for each answer.",
				AudioURL: "/assets/audio/listening-dental-clinic.mp3",
				Questions: []model.PaperQuestion{
					{ID: "q1", Text: "The caller's last name is ____.", Kind: model.KindShortAnswer},
					{ID: "q2", Text: "The caller's phone number is ____.", Kind: model.KindShortAnswer},
					{ID: "q3", Text: "The caller wants an appointment because of ____.", Kind: model.KindShortAnswer},
					{ID: "q4", Text: "The appointment is booked for ____ (day of the week).", Kind: model.KindShortAnswer},
					{ID: "q5", Text: "The appointment time is ____.", Kind: model.KindShortAnswer},
				},
			},
			{
				ID:    "reading",
				Title: "Section 2: Reading",
				Instructions: "Read the passage and answer questions 1-10. Questions 1-5 " +
					"are multiple choice; for questions 6-10 fill each gap with one word " +
					"from the passage.",
				Passage: walkingPassage,
				Questions: []model.PaperQuestion{
					{
						ID: "r1", Kind: model.KindMultipleChoice,
						Text: "How much walking do health experts recommend?",
						Options: []model.PaperOption{
							{ID: "A", Text: "An hour of jogging every day"},
							{ID: "B", Text: "30 minutes of brisk walking a day"},
							{ID: "C", Text: "10 minutes of stretching"},
							{ID: "D", Text: "Walking only at weekends"},
						},
					},
					{
						ID: "r2", Kind: model.KindMultipleChoice,
						Text: "According to the passage, what does daily walking do for the body?",
						Options: []model.PaperOption{
							{ID: "A", Text: "It builds large muscles"},
							{ID: "B", Text: "It strengthens the heart and improves blood circulation"},
							{ID: "C", Text: "It increases appetite"},
							{ID: "D", Text: "It improves eyesight"},
						},
					},
					{
						ID: "r3", Kind: model.KindMultipleChoice,
						Text: "Why is walking suitable for people of all ages?",
						Options: []model.PaperOption{
							{ID: "A", Text: "It requires special equipment"},
							{ID: "B", Text: "It is gentle on the joints and less likely to cause injuries"},
							{ID: "C", Text: "It can only be done indoors"},
							{ID: "D", Text: "It is a competitive sport"},
						},
					},
					{
						ID: "r4", Kind: model.KindMultipleChoice,
						Text: "What mental benefit of walking does the passage mention?",
						Options: []model.PaperOption{
							{ID: "A", Text: "Improving memory for names"},
							{ID: "B", Text: "Helping to think clearly and relieve stress"},
							{ID: "C", Text: "Making people more talkative"},
							{ID: "D", Text: "Helping people sleep less"},
						},
					},
					{
						ID: "r5", Kind: model.KindMultipleChoice,
						Text: "Which sentence best summarizes the passage?",
						Options: []model.PaperOption{
							{ID: "A", Text: "Walking is only useful for elderly people"},
							{ID: "B", Text: "Walking is a small change with huge health benefits"},
							{ID: "C", Text: "Running is better than walking"},
							{ID: "D", Text: "Exercise is a waste of time"},
						},
					},
					{ID: "r6", Text: "Walking is one of the most ____ forms of exercise.", Kind: model.KindGapFill},
					{ID: "r7", Text: "A daily walk helps to manage ____.", Kind: model.KindGapFill},
					{ID: "r8", Text: "Walking is less likely to cause ____.", Kind: model.KindGapFill},
					{ID: "r9", Text: "Walking helps to relieve ____.", Kind: model.KindGapFill},
					{ID: "r10", Text: "Walking outdoors reconnects us with the ____ world.", Kind: model.KindGapFill},
				},
			},
			{
				ID:    "writing",
				Title: "Section 3: Writing",
				Instructions: "Write at least 150 words on the topic below. Your text is " +
					"reviewed by an examiner; it is not scored automatically.",
				Prompt: "Some people believe that technology has made our lives easier, " +
					"while others think it has made life more complicated. Discuss both " +
					"views and give your own opinion.",
				MinimumWords: MinimumWritingWords,
			},
			{
				ID:    "speaking",
				Title: "Section 4: Speaking",
				Instructions: "Record yourself speaking for 1-2 minutes on the topic " +
					"below, upload the recording, and paste the link. The recording is " +
					"reviewed by an examiner.",
				Prompt: "Describe a place you have visited that left a strong impression " +
					"on you. Explain where it is, when you went there, and why it was " +
					"memorable.",
			},
		},
	}
}
