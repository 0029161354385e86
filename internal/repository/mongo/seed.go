package mongo

import (
	"context"

	"fitai/agent-backend/internal/domain"
	"fitai/agent-backend/internal/repository"

	"github.com/sirupsen/logrus"
)

// SeedEquipment populates the gym equipment catalog if it is empty.
// Safe to call on every startup.
func SeedEquipment(ctx context.Context, repo repository.EquipmentRepository) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	logrus.Info("initializing gym equipment catalog")
	if err := repo.CreateMany(ctx, initialEquipment()); err != nil {
		return err
	}
	logrus.Info("gym equipment catalog initialized")
	return nil
}

func initialEquipment() []domain.Equipment {
	return []domain.Equipment{
		{
			Name:           "Barbell Bench Press",
			Description:    "Barbell bench press is one of the most classic chest training exercises, primarily targeting pectoralis major, anterior deltoids, and triceps.",
			PrimaryMuscles: "Pectoralis Major (Upper/Middle/Lower), Anterior Deltoids, Triceps",
			Alternatives:   "Dumbbell Bench Press, Chest Press Machine, Push-ups, Flat Bench Press, Incline Bench Press",
			WorkoutTypes:   "Strength Training, Muscle Building",
			Difficulty:     "Intermediate to Advanced",
			Tips:           "Keep shoulder blades retracted and depressed, control speed, pay attention to breathing rhythm.",
		},
		{
			Name:           "Dumbbell Bench Press",
			Description:    "Dumbbell bench press provides greater range of motion compared to barbell bench press, helping to balance left and right strength.",
			PrimaryMuscles: "Pectoralis Major, Anterior Deltoids, Triceps",
			Alternatives:   "Barbell Bench Press, Chest Press Machine, Smith Machine Bench Press, Push-ups",
			WorkoutTypes:   "Strength Training, Muscle Building, Rehabilitation Training",
			Difficulty:     "Beginner to Advanced",
			Tips:           "Choose appropriate dumbbell weight, maintain stable movement, avoid lateral swaying.",
		},
		{
			Name:           "Chest Press Machine",
			Description:    "Fixed chest press machine is suitable for beginners, providing stable movement path with high safety.",
			PrimaryMuscles: "Pectoralis Major, Anterior Deltoids, Triceps",
			Alternatives:   "Barbell Bench Press, Dumbbell Bench Press, Push-ups, Pec Deck Machine",
			WorkoutTypes:   "Strength Training, Muscle Building, Beginner Training",
			Difficulty:     "Beginner",
			Tips:           "Adjust seat height, keep back pressed against backrest, control weight.",
		},
		{
			Name:           "Pull-up Bar",
			Description:    "Pull-ups primarily target latissimus dorsi, biceps, and rhomboids, one of the most effective back training exercises.",
			PrimaryMuscles: "Latissimus Dorsi, Rhomboids, Teres Major, Biceps",
			Alternatives:   "Barbell Rows, Seated Rows, Lat Pulldown, T-Bar Rows",
			WorkoutTypes:   "Strength Training, Muscle Building, Functional Training",
			Difficulty:     "Intermediate to Advanced",
			Tips:           "Keep body stable, avoid swinging, can use assistance bands initially.",
		},
		{
			Name:           "Barbell Rows",
			Description:    "Barbell rows effectively increase back muscle thickness while training core muscles.",
			PrimaryMuscles: "Latissimus Dorsi, Rhomboids, Middle/Lower Trapezius, Biceps",
			Alternatives:   "Seated Rows, T-Bar Rows, Dumbbell Rows, Low Cable Rows",
			WorkoutTypes:   "Strength Training, Muscle Building",
			Difficulty:     "Intermediate to Advanced",
			Tips:           "Keep back straight, pull barbell toward abdomen, avoid rounding back.",
		},
		{
			Name:           "Seated Row Machine",
			Description:    "Seated row machine provides fixed movement path, suitable for precise back muscle training.",
			PrimaryMuscles: "Latissimus Dorsi, Rhomboids, Middle/Lower Trapezius, Biceps",
			Alternatives:   "Barbell Rows, T-Bar Rows, Lat Pulldown, Pull-ups",
			WorkoutTypes:   "Strength Training, Muscle Building, Beginner Training",
			Difficulty:     "Beginner to Intermediate",
			Tips:           "Keep chest up, retract shoulder blades when pulling back.",
		},
		{
			Name:           "Barbell Squats",
			Description:    "Barbell squats are the gold standard for leg training, primarily targeting quadriceps, glutes, and hamstrings.",
			PrimaryMuscles: "Quadriceps, Glutes, Hamstrings, Calf Muscles",
			Alternatives:   "Leg Press Machine, Smith Machine Squats, Leg Press, Dumbbell Squats",
			WorkoutTypes:   "Strength Training, Muscle Building, Functional Training",
			Difficulty:     "Intermediate to Advanced",
			Tips:           "Keep core tight, knees aligned with toes, squat until thighs parallel to ground.",
		},
		{
			Name:           "Leg Press Machine",
			Description:    "Leg press machine can handle heavier weights, suitable for leg strength and muscle mass training.",
			PrimaryMuscles: "Quadriceps, Glutes, Hamstrings",
			Alternatives:   "Barbell Squats, Machine Squats, Hack Squats, Front Squats",
			WorkoutTypes:   "Strength Training, Muscle Building, Rehabilitation Training",
			Difficulty:     "Beginner to Advanced",
			Tips:           "Keep back pressed against backrest, control lowering speed, avoid excessive knee flexion.",
		},
		{
			Name:           "Squat Machine",
			Description:    "Squat machine provides movement assistance, reducing core muscle requirements, focusing more on leg training.",
			PrimaryMuscles: "Quadriceps, Glutes, Hamstrings",
			Alternatives:   "Barbell Squats, Smith Machine Squats, Leg Press, Hack Squats",
			WorkoutTypes:   "Strength Training, Muscle Building, Beginner Training",
			Difficulty:     "Beginner to Intermediate",
			Tips:           "Adjust body position properly, keep knees aligned with toes.",
		},
		{
			Name:           "Barbell Shoulder Press",
			Description:    "Barbell shoulder press is the core exercise for shoulder training, primarily targeting anterior and medial deltoids.",
			PrimaryMuscles: "Anterior Deltoids, Medial Deltoids, Upper Trapezius, Triceps",
			Alternatives:   "Dumbbell Shoulder Press, Smith Machine Shoulder Press, Machine Shoulder Press, Arnold Press",
			WorkoutTypes:   "Strength Training, Muscle Building",
			Difficulty:     "Intermediate to Advanced",
			Tips:           "Keep core stable, don't fully lock elbows when pressing up.",
		},
		{
			Name:           "Dumbbell Lateral Raises",
			Description:    "Dumbbell lateral raises are the best isolation exercise for medial deltoids.",
			PrimaryMuscles: "Medial Deltoids",
			Alternatives:   "Cable Lateral Raises, Machine Lateral Raises, Barbell Lateral Raises",
			WorkoutTypes:   "Muscle Building, Toning Training",
			Difficulty:     "Beginner to Advanced",
			Tips:           "Keep slight elbow bend, raise slowly, avoid using momentum to swing.",
		},
		{
			Name:           "Barbell Curls",
			Description:    "Barbell curls primarily target biceps, a classic arm training exercise.",
			PrimaryMuscles: "Biceps, Brachialis",
			Alternatives:   "Dumbbell Curls, Machine Curls, Cable Curls, Hammer Curls",
			WorkoutTypes:   "Muscle Building, Toning Training",
			Difficulty:     "Beginner to Advanced",
			Tips:           "Keep elbows fixed, control movement speed, avoid body swaying.",
		},
		{
			Name:           "Dips",
			Description:    "Dips are effective for training triceps and lower chest muscles.",
			PrimaryMuscles: "Triceps, Lower Pectoralis Major, Anterior Deltoids",
			Alternatives:   "Machine Dips, Close-grip Push-ups, Dumbbell Tricep Extensions, Cable Pushdowns",
			WorkoutTypes:   "Strength Training, Muscle Building, Functional Training",
			Difficulty:     "Intermediate to Advanced",
			Tips:           "Keep body vertical, control lowering speed, can use assistance bands.",
		},
		{
			Name:           "Treadmill",
			Description:    "Treadmill is the most common cardio training equipment, suitable for cardiovascular fitness and fat loss training.",
			PrimaryMuscles: "Cardiovascular System, Full Body Muscles",
			Alternatives:   "Outdoor Running, Elliptical Machine, Rowing Machine, Spin Bike",
			WorkoutTypes:   "Cardio Training, Fat Loss Training, Cardiovascular Training",
			Difficulty:     "Beginner to Advanced",
			Tips:           "Pay attention to speed and incline adjustment, maintain proper running form, avoid overtraining.",
		},
		{
			Name:           "Elliptical Machine",
			Description:    "Elliptical machine has low joint impact, suitable for people with knee problems for cardio training.",
			PrimaryMuscles: "Cardiovascular System, Leg Muscles, Glute Muscles",
			Alternatives:   "Treadmill, Spin Bike, Rowing Machine, Step Machine",
			WorkoutTypes:   "Cardio Training, Fat Loss Training, Rehabilitation Training",
			Difficulty:     "Beginner to Advanced",
			Tips:           "Keep upper body straight, drive with heels, adjust resistance and speed.",
		},
		{
			Name:           "Rowing Machine",
			Description:    "Rowing machine is a full-body cardio equipment, training both cardiovascular and muscular strength.",
			PrimaryMuscles: "Cardiovascular System, Back Muscles, Leg Muscles, Core Muscles",
			Alternatives:   "Treadmill, Elliptical Machine, Spin Bike, Squats",
			WorkoutTypes:   "Cardio Training, Strength Training, Full Body Training",
			Difficulty:     "Beginner to Advanced",
			Tips:           "Push with legs first, then lean back, then pull arms, keep movement smooth and fluid.",
		},
	}
}
